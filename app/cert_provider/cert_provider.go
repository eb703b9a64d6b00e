package main

import (
	formatter "github.com/bluexlab/logrus-formatter"
	"github.com/manualtls/manualtls/pkg/cert_provider/cli"
)

func main() {
	formatter.InitLogger()
	cli := cli.App{}
	cli.Run()
}
