package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/dao/redis_repo"
	"studyhub/logger"
	"studyhub/logic"
	"studyhub/message_queue"
	"studyhub/pkg/snowflake"
	"studyhub/settings"

	"go.uber.org/zap"
)

func main() {
	if err := settings.Init(); err != nil {
		fmt.Printf("load settings failed, err:%v\n", err)
		return
	}
	fmt.Println("load settings success")

	if err := logger.Init(settings.GlobalSettings.LogCfg, settings.GlobalSettings.AppCfg.Mode); err != nil {
		fmt.Printf("init logger failed, err:%v\n", err)
		return
	}
	defer zap.L().Sync()
	zap.L().Debug("logger init success...")

	if err := mysql_repo.InitDB(settings.GlobalSettings.MysqlCfg); err != nil {
		fmt.Printf("init mysql failed, err:%v\n", err)
		return
	}
	defer mysql_repo.Close()

	if err := snowflake.Init(settings.GlobalSettings.AppCfg.StartTime,
		settings.GlobalSettings.AppCfg.MachineID); err != nil {
		fmt.Printf("init snowflake failed, err:%v\n", err)
		return
	}

	if err := redis_repo.Init(settings.GlobalSettings.RedisCfg); err != nil {
		fmt.Printf("init redis failed, err:%v\n", err)
		return
	}
	defer redis_repo.Close()

	cache.InitFollowCounter(settings.GlobalSettings.FreeCacheCfg)
	logic.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	message_queue.InitMQ(ctx, settings.GlobalSettings.MQCfg)

	zap.L().Info("studyhub core started",
		zap.String("name", settings.GlobalSettings.AppCfg.Name),
		zap.String("mode", settings.GlobalSettings.AppCfg.Mode))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down...")
	cancel()
}
