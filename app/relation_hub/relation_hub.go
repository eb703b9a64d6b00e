package main

import (
	formatter "github.com/bluexlab/logrus-formatter"
	"github.com/manualtls/manualtls/pkg/relay/server"
)

func main() {
	formatter.InitLogger()
	app := server.NewHubApp()
	app.Run()
}
