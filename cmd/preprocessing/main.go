package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/lintang-b-s/ltn/pkg/network"
)

var (
	networkFile  = flag.String("f", "network.geojson", "geojson road network, one feature per road and intersection")
	snapshotFile = flag.String("o", "network.snap", "output binary network snapshot")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("reading geojson network %s", *networkFile)
	data, err := os.ReadFile(*networkFile)
	if err != nil {
		log.Fatal(err)
	}

	net, err := network.LoadGeoJSON(data)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("road network has %d roads and %d intersections", net.NumRoads(), net.NumIntersections())
	recordMemProfile(memprofile, "load_geojson")

	log.Printf("saving network snapshot to %s...", *snapshotFile)
	if err := net.SaveToFile(*snapshotFile); err != nil {
		log.Fatal(err)
	}

	recordMemProfile(memprofile, "save_snapshot")
	fmt.Printf("\nnetwork snapshot ready!!\n")
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
