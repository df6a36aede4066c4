package main

import (
	"roombook/core/logger"
	"roombook/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
