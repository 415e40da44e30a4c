package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	_ "github.com/lintang-b-s/ltn/docs"
	"github.com/lintang-b-s/ltn/pkg/kv"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/server/rest"
	"github.com/lintang-b-s/ltn/pkg/server/rest/service"
	"github.com/lintang-b-s/ltn/pkg/session"
	"github.com/lintang-b-s/ltn/pkg/shortcut"
	"github.com/lintang-b-s/ltn/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr   = flag.String("listenaddr", ":5000", "server listen address")
	snapshotFile = flag.String("f", "network.snap", "binary network snapshot made by the preprocessing binary")
	geojsonFile  = flag.String("geojson", "", "load the road network from a geojson file instead of the snapshot")
	dbDir        = flag.String("db", "./ltn_db", "badger directory for saved neighborhoods")
	workers      = flag.Int("workers", 4, "number of border searches run in parallel per recompute")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
)

const shutdownTimeout = 10 * time.Second

//	@title			ltn lintangbs API
//	@version		1.0
//	@description	low traffic neighborhood planning engine. counts the shortcuts through a neighborhood and lets you place modal filters against them

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	roadNet, err := loadNetwork()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("road network loaded: %d roads, %d intersections", roadNet.NumRoads(), roadNet.NumIntersections())
	recordMemProfile(memprofile, "load_network")

	db, err := badger.Open(badger.DefaultOptions(*dbDir))
	if err != nil {
		log.Fatal(err)
	}
	repo := kv.NewFilterRepository(db)

	log.Printf("building road r-tree...")
	snapper, err := snap.NewRoadSnapper(roadNet)
	if err != nil {
		repo.Close()
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost"+*listenAddr+"/swagger/doc.json"),
	))

	graph := movement.NewMovementGraph(roadNet)
	svc := service.NewNeighborhoodService(graph, repo, snapper,
		session.WithShortcutOptions(shortcut.WithWorkers(*workers)),
		session.OnRecompute(m.ObserveRecompute),
	)
	recordMemProfile(memprofile, "service_init")

	rest.NeighborhoodRouter(r, svc, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		repo.Close()
		log.Fatal(err)
	}
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	err = serve(ctx, &http.Server{Handler: r}, ln)
	log.Printf("shutting down, closing neighborhood store...")
	repo.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadNetwork() (*network.RoadNetwork, error) {
	if *geojsonFile == "" {
		log.Printf("loading network snapshot %s...", *snapshotFile)
		return network.LoadFromFile(*snapshotFile)
	}

	log.Printf("loading geojson network %s...", *geojsonFile)
	data, err := os.ReadFile(*geojsonFile)
	if err != nil {
		return nil, err
	}
	return network.LoadGeoJSON(data)
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
