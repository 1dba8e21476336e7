package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type HomeAssistant struct {
	URL                string `mapstructure:"url"`
	Token              string `mapstructure:"token"`
	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"`
}

type Daylight struct {
	SunriseMin string `mapstructure:"sunriseMin"`
	SunriseMax string `mapstructure:"sunriseMax"`
	SunsetMin  string `mapstructure:"sunsetMin"`
	SunsetMax  string `mapstructure:"sunsetMax"`
}

type Entities struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

type Commands struct {
	RatePerSecond float64       `mapstructure:"ratePerSecond"`
	QueueSize     int           `mapstructure:"queueSize"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type MQTT struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"clientId"`
	TopicPrefix string `mapstructure:"topicPrefix"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// entity ids are listed per room because viper splits map keys on dots
type Room struct {
	Name     string   `mapstructure:"name"`
	Entities []string `mapstructure:"entities"`
}

type Config struct {
	HomeAssistant HomeAssistant `mapstructure:"homeAssistant"`
	ListenAddr    string        `mapstructure:"listenAddr"`
	DBPath        string        `mapstructure:"dbPath"`
	GeoLocation   string        `mapstructure:"geoLocation"`
	Daylight      Daylight      `mapstructure:"daylight"`
	Entities      Entities      `mapstructure:"entities"`
	Rooms         []Room        `mapstructure:"rooms"`
	Commands      Commands      `mapstructure:"commands"`
	MQTT          MQTT          `mapstructure:"mqtt"`
	LogFile       string        `mapstructure:"logFile"`
}

// every key gets a default so the environment can set keys the file leaves out
func setDefaults() {
	viper.SetDefault("homeAssistant.url", "")
	viper.SetDefault("homeAssistant.token", "")
	viper.SetDefault("homeAssistant.insecureSkipVerify", false)
	viper.SetDefault("listenAddr", ":8080")
	viper.SetDefault("dbPath", "hadash.db")
	viper.SetDefault("geoLocation", "0,0")
	viper.SetDefault("daylight.sunriseMin", "05:00")
	viper.SetDefault("daylight.sunriseMax", "08:00")
	viper.SetDefault("daylight.sunsetMin", "17:00")
	viper.SetDefault("daylight.sunsetMax", "22:00")
	viper.SetDefault("entities.include", []string{".*"})
	viper.SetDefault("entities.exclude", []string{})
	viper.SetDefault("commands.ratePerSecond", 10.0)
	viper.SetDefault("commands.queueSize", 64)
	viper.SetDefault("commands.timeout", 10*time.Second)
	viper.SetDefault("mqtt.broker", "")
	viper.SetDefault("mqtt.clientId", "hadash")
	viper.SetDefault("mqtt.topicPrefix", "hadash")
	viper.SetDefault("mqtt.username", "")
	viper.SetDefault("mqtt.password", "")
	viper.SetDefault("logFile", "logs/hadash.log")
}

// finds and reads the config file, configFile overrides the search paths when set
func InitialiseConfig(configFile string) error {
	setDefaults()

	viper.SetEnvPrefix("hadash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")                // name of config file (without extension)
		viper.SetConfigType("json")                  // REQUIRED if the config file does not have the extension in the name
		viper.AddConfigPath("/etc/hadash/")          // path to look for the config file in
		viper.AddConfigPath("$HOME/.config/hadash/") // call multiple times to add many search paths
		viper.AddConfigPath(".")                     // optionally look for config in the working directory
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// a flag set on the command line wins over the config file and the environment
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind to %s", key)
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("error binding flag %s: %w", flag.Name, err)
	}
	return nil
}

func ReadConfig() (*Config, error) {
	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.HomeAssistant.URL == "" {
		return nil, fmt.Errorf("homeAssistant.url is required")
	}
	cfg.HomeAssistant.URL = strings.TrimSuffix(cfg.HomeAssistant.URL, "/")
	return &cfg, nil
}

// entity id -> room name
func (c Config) RoomAssignments() map[string]string {
	rooms := map[string]string{}
	for _, room := range c.Rooms {
		for _, entityID := range room.Entities {
			rooms[entityID] = room.Name
		}
	}
	return rooms
}
