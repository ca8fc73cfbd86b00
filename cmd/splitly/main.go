package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"

	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"

	"github.com/viant/splitly"
	"github.com/viant/splitly/cache"
	"github.com/viant/splitly/fragment"
	"github.com/viant/splitly/splitter"
	"github.com/viant/splitly/watch"
)

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "split":
		splitCmd(os.Args[2:])
	case "count":
		countCmd(os.Args[2:])
	case "strategies":
		strategiesCmd(os.Args[2:])
	case "watch":
		watchCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: splitly <command> [options] [source ...]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  split       Split sources into fragments")
	fmt.Fprintln(os.Stderr, "  count       Count the fragments a split would produce")
	fmt.Fprintln(os.Stderr, "  strategies  List registered splitting strategies")
	fmt.Fprintln(os.Stderr, "  watch       Split files as they change")
	fmt.Fprintln(os.Stderr, "  serve       Serve split tools over MCP")
}

func splitCmd(args []string) {
	flags := flag.NewFlagSet("split", flag.ExitOnError)
	strategy := flags.String("strategy", "text", "splitting strategy (see strategies command)")
	by := flags.Int("by", 0, "chunk unit count, strategy default when 0")
	optionsJSON := flags.String("options", "", "strategy options as JSON, e.g. {\"by\":2}")
	configPath := flags.String("config", "", "config yaml with strategy profiles (optional)")
	dest := flags.String("dest", "", "write fragment files under this location (optional)")
	cacheURL := flags.String("cache", "", "split index base location (optional)")
	withText := flags.Bool("text", false, "print fragment text")
	concurrency := flags.Int("concurrency", 4, "max sources split in parallel")
	debugSleep := flags.Int("debug-sleep", 0, "debug: sleep N seconds before execution (for gops)")
	flags.Parse(args)

	sources := flags.Args()
	if len(sources) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("split", *debugSleep)

	service := newService(*configPath)
	options, err := buildOptions(*optionsJSON, *by)
	if err != nil {
		log.Fatalf("split: %v", err)
	}

	var index *cache.Index
	if *cacheURL != "" {
		if index, err = cache.NewIndex(ctx, *cacheURL); err != nil {
			log.Fatalf("split: %v", err)
		}
	}

	var mux sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(*concurrency)
	for _, s := range sources {
		source := s
		group.Go(func() error {
			fragments, cached, err := splitSource(groupCtx, service, index, source, *strategy, options)
			if err != nil {
				return fmt.Errorf("%v: %w", source, err)
			}
			mux.Lock()
			defer mux.Unlock()
			printFragments(source, fragments, cached, *withText)
			if *dest != "" {
				if err = writeFragments(groupCtx, *dest, source, fragments); err != nil {
					return fmt.Errorf("%v: %w", source, err)
				}
			}
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		log.Fatalf("split: %v", err)
	}
	if index != nil {
		if err = index.Persist(ctx); err != nil {
			log.Fatalf("split: persist index: %v", err)
		}
	}
}

// splitSource splits one source, consulting the index first when present
func splitSource(ctx context.Context, service *splitly.Service, index *cache.Index, source, strategy string, options splitter.Options) (fragment.Fragments, bool, error) {
	location := splitter.NewLocation(source)
	if index == nil {
		fragments, err := service.SplitValue(ctx, location, strategy, options)
		return fragments, false, err
	}
	fs := afs.New()
	object, err := fs.Object(ctx, location.URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat %v: %w", location.URL, err)
	}
	payload, err := fs.DownloadWithURL(ctx, location.URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to download %v: %w", location.URL, err)
	}
	hash := fragment.Checksum(payload)
	if entry, ok := index.Lookup(location.URL, hash); ok {
		return entry.Fragments, true, nil
	}
	fragments, err := service.SplitValue(ctx, payload, strategy, options)
	if err != nil {
		return nil, false, err
	}
	index.Store(&cache.Entry{
		ID:        location.URL,
		ModTime:   object.ModTime().Unix(),
		Hash:      hash,
		Count:     int64(len(fragments)),
		Fragments: fragments,
	})
	return fragments, false, nil
}

func countCmd(args []string) {
	flags := flag.NewFlagSet("count", flag.ExitOnError)
	strategy := flags.String("strategy", "text", "splitting strategy (see strategies command)")
	by := flags.Int("by", 0, "chunk unit count, strategy default when 0")
	optionsJSON := flags.String("options", "", "strategy options as JSON, e.g. {\"by\":2}")
	configPath := flags.String("config", "", "config yaml with strategy profiles (optional)")
	debugSleep := flags.Int("debug-sleep", 0, "debug: sleep N seconds before execution (for gops)")
	flags.Parse(args)

	sources := flags.Args()
	if len(sources) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("count", *debugSleep)

	service := newService(*configPath)
	options, err := buildOptions(*optionsJSON, *by)
	if err != nil {
		log.Fatalf("count: %v", err)
	}

	var total int64
	for _, source := range sources {
		count, err := service.CountValue(ctx, splitter.NewLocation(source), *strategy, options)
		if err != nil {
			log.Fatalf("count: %v: %v", source, err)
		}
		fmt.Printf("source=%s fragments=%d\n", source, count)
		total += count
	}
	if len(sources) > 1 {
		fmt.Printf("total=%d\n", total)
	}
}

func strategiesCmd(args []string) {
	flags := flag.NewFlagSet("strategies", flag.ExitOnError)
	configPath := flags.String("config", "", "config yaml with strategy profiles (optional)")
	flags.Parse(args)

	service := newService(*configPath)
	names := service.Registry().Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
}

func watchCmd(args []string) {
	flags := flag.NewFlagSet("watch", flag.ExitOnError)
	strategy := flags.String("strategy", "text", "splitting strategy (see strategies command)")
	by := flags.Int("by", 0, "chunk unit count, strategy default when 0")
	optionsJSON := flags.String("options", "", "strategy options as JSON, e.g. {\"by\":2}")
	configPath := flags.String("config", "", "config yaml with strategy profiles (optional)")
	withText := flags.Bool("text", false, "print fragment text")
	buffer := flags.Int("buffer", 64, "change event buffer size")
	debugSleep := flags.Int("debug-sleep", 0, "debug: sleep N seconds before execution (for gops)")
	flags.Parse(args)

	paths := flags.Args()
	if len(paths) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("watch", *debugSleep)

	service := newService(*configPath)
	options, err := buildOptions(*optionsJSON, *by)
	if err != nil {
		log.Fatalf("watch: %v", err)
	}

	watcher, err := watch.New(paths, watch.WithBuffer(*buffer))
	if err != nil {
		log.Fatalf("watch: %v", err)
	}
	go func() {
		<-ctx.Done()
		_ = watcher.Close()
	}()

	sink, err := service.Split(ctx, watcher.Source(), *strategy, options)
	if err != nil {
		log.Fatalf("watch: %v", err)
	}
	log.Printf("splitly: watching %s", strings.Join(paths, ", "))
	for aFragment := range sink.Chan() {
		printFragment(aFragment, *withText)
	}
	if err = sink.Err(); err != nil {
		log.Fatalf("watch: %v", err)
	}
}

func newService(configPath string) *splitly.Service {
	if configPath == "" {
		return splitly.New()
	}
	config, err := splitly.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return splitly.New(splitly.WithConfig(config))
}

func buildOptions(optionsJSON string, by int) (splitter.Options, error) {
	options := splitter.Options{}
	if optionsJSON != "" {
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, fmt.Errorf("failed to parse options: %w", err)
		}
	}
	if by > 0 {
		options["by"] = by
	}
	return options, nil
}

func printFragments(source string, fragments fragment.Fragments, cached, withText bool) {
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	fmt.Printf("source=%s fragments=%d%s\n", source, len(fragments), suffix)
	for _, aFragment := range fragments {
		printFragment(aFragment, withText)
	}
}

func printFragment(aFragment *fragment.Fragment, withText bool) {
	fmt.Printf("  [%d] %d-%d kind=%s", aFragment.Index, aFragment.Start, aFragment.End, aFragment.Kind)
	if aFragment.Name != "" {
		fmt.Printf(" name=%s", aFragment.Name)
	}
	fmt.Println()
	if withText {
		text := aFragment.Text()
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		fmt.Println(text)
	}
}

// writeFragments materializes fragment payloads as files under dest
func writeFragments(ctx context.Context, dest, source string, fragments fragment.Fragments) error {
	fs := afs.New()
	stem, ext := sourceStem(source)
	for _, aFragment := range fragments {
		URL := url.Join(dest, fmt.Sprintf("%s_%05d%s", stem, aFragment.Index, ext))
		if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(aFragment.Data)); err != nil {
			return fmt.Errorf("failed to write %v: %w", URL, err)
		}
	}
	return nil
}

func sourceStem(source string) (string, string) {
	base := path.Base(strings.TrimSuffix(source, "/"))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return base[:idx], base[idx:]
	}
	return base, ""
}

func maybeDebugSleep(cmd string, seconds int) {
	if seconds <= 0 {
		seconds = debugSleepFromEnv()
	}
	if seconds <= 0 {
		return
	}
	log.Printf("debug: cmd=%s pid=%d sleep=%ds", cmd, os.Getpid(), seconds)
	time.Sleep(time.Duration(seconds) * time.Second)
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}

func debugSleepFromEnv() int {
	val := strings.TrimSpace(os.Getenv("SPLITLY_DEBUG_SLEEP"))
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
