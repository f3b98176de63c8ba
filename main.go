// @title Linux+ Learning API
// @version 2.0
// @description CompTIA Linux+ 备考后端：测验评分、闪卡、学习进度与多服务商 AI 解析。

// @contact.name API支持

// @host localhost:8001
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"linuxplus_backend/internal/app"
	"linuxplus_backend/internal/config"
	"linuxplus_backend/pkg/logger"
	"log"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录（包含 config.yaml）")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移/建索引，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移在 NewApp 中完成，直接退出
	if cfg.MigrateOnly {
		application.Close(context.Background())
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
