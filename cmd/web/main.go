package main

import "github.com/maninivas13/farmasthi/internal/app"

func main() {
	app.Run()
}
