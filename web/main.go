package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory of JSON scene files")
	flag.Parse()
	defer glog.Flush()

	if err := renderer.RegisterMetrics(); err != nil {
		glog.Errorf("Error registering render metrics: %v", err)
		os.Exit(1)
	}

	webServer := server.NewServer(*port, *scenesDir)

	glog.Infof("Whitted Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
