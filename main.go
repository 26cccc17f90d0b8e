// @title 虚拟招聘会排队服务API
// @version 1.0
// @description 虚拟招聘会排队服务API

// @host localhost:8080
// @BasePath /v1

package main

import (
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MananRajppout/alif/internal/common/utils"
	"github.com/MananRajppout/alif/internal/service/task"
	"github.com/MananRajppout/alif/internal/service/web"

	"github.com/jasonlvhit/gocron"
	"github.com/qiniu/x/log"
)

var (
	configFilePath = "alif-queue.conf"
)

func main() {
	flag.StringVar(&configFilePath, "f", configFilePath, "configuration file to run alif queue server")
	flag.Parse()

	utils.InitConf(configFilePath)
	log.SetOutputLevel(utils.DefaultConf.DebugLevel)
	rand.Seed(time.Now().UnixNano())
	// 启动定时任务
	go func() {
		roundTask, err := task.NewRoundTask(utils.DefaultConf.Mongo.URI, utils.DefaultConf.Mongo.Database)
		if err != nil {
			log.Errorf("failed to create round task, error %v", err)
			return
		}
		_ = gocron.Every(1).Hours().Do(roundTask.TaskForModifyRoundStatus)
		<-gocron.Start()
	}()
	// 启动 gin HTTP server。
	r, err := web.NewRouter(&utils.DefaultConf)
	if err != nil {
		log.Fatalf("failed to create gin HTTP server, error %v", err)
	}

	errch := make(chan error, 1)
	go func() {
		httpServerErr := r.Run(utils.DefaultConf.ListenAddr)
		errch <- httpServerErr
	}()

	qC := make(chan os.Signal, 1)
	signal.Notify(qC, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-qC:
		log.Info(s.String())
	case err = <-errch:
		log.Error("http server stopped, error", err.Error())
	}
}
