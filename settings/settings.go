package settings

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppSettings struct {
	AppCfg       *AppConfig          `mapstructure:"app"`
	LogCfg       *LogConfig          `mapstructure:"log"`
	MysqlCfg     *MysqlConfig        `mapstructure:"mysql"`
	RedisCfg     *RedisConfig        `mapstructure:"redis"`
	CacheCfg     *CacheConfig        `mapstructure:"cache"`
	FreeCacheCfg *FreeCacheConfig    `mapstructure:"free_cache"`
	MQCfg        *MessageQueueConfig `mapstructure:"message_queue"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Mode      string `mapstructure:"mode"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	StartTime string `mapstructure:"start_time"`
	MachineID int64  `mapstructure:"machine_id"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type MysqlConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_connections"`
	MaxIdleConns int    `mapstructure:"max_idle_connections"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	PoolSize int    `mapstructure:"pool_size"`
}

// CacheConfig holds freshness knobs for the content caches. TTLs are in
// seconds; the shortest one bounds how long a missed invalidation stays
// observable.
type CacheConfig struct {
	ItemTTL      int `mapstructure:"item_ttl"`
	PageTTL      int `mapstructure:"page_ttl"`
	HistoryTTL   int `mapstructure:"history_ttl"`
	AggregateTTL int `mapstructure:"aggregate_ttl"`
	PageSize     int `mapstructure:"page_size"`
}

type FreeCacheConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

type MessageQueueConfig struct {
	Brokers        []string `mapstructure:"brokers"`
	MaxWaitingTime int      `mapstructure:"max_waiting_time"`
	MaxBatchSize   int      `mapstructure:"max_batch_size"`
}

var GlobalSettings = new(AppSettings)

func Init() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	err = viper.ReadInConfig()
	if err != nil {
		fmt.Println("viper.ReadInConfig() failed,", err)
		return
	}
	err = viper.Unmarshal(GlobalSettings)
	if err != nil {
		fmt.Println("viper.Unmarshal() failed,", err)
		return err
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		if err := viper.Unmarshal(GlobalSettings); err != nil {
			fmt.Println("viper.Unmarshal() failed,", err)
		}
	})
	return
}
