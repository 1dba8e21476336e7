package constants

import "time"

const MainUpdateInterval = time.Minute
const ReconnectInterval = 5 * time.Second
const MaxReconnectInterval = 2 * time.Minute

// entity states
const StateOn = "on"
const StateOff = "off"
const StateUnavailable = "unavailable"
const StateUnknown = "unknown"

// entity domains
const DomainLight = "light"
const DomainSwitch = "switch"
const DomainSensor = "sensor"
const DomainBinarySensor = "binary_sensor"
const DomainClimate = "climate"
const DomainHomeAssistant = "homeassistant"

// attributes
const AttrFriendlyName = "friendly_name"
const AttrDeviceClass = "device_class"
const AttrUnitOfMeasurement = "unit_of_measurement"
const AttrBrightness = "brightness"
const AttrColorTempKelvin = "color_temp_kelvin"
const AttrMinColorTempKelvin = "min_color_temp_kelvin"
const AttrMaxColorTempKelvin = "max_color_temp_kelvin"
const AttrSupportedColorModes = "supported_color_modes"
const AttrCurrentTemperature = "current_temperature"
const AttrTemperature = "temperature"
const AttrMinTemp = "min_temp"
const AttrMaxTemp = "max_temp"
const AttrTargetTempStep = "target_temp_step"

const ColorModeColorTemp = "color_temp"

const BrightnessMin = 1
const BrightnessMax = 255

const DefaultThermostatMin = 7
const DefaultThermostatMax = 35

// hub events
const EventTypeStateChanged = "state_changed"

const UnavailableTooltip = "This device is currently unavailable"
