package main

import "emprecords/internal/app/server"

func main() {
	server.Run()
}
