package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"riak"
	"riak/internal/logging"
	"riak/internal/observability"
	"riak/object"
)

const usage = `usage: riakctl [flags] <command> [args]

commands:
  ping                      check liveness
  info                      node name and server version
  get <bucket> <key>        fetch an object and print its value
  put <bucket> <key> <val>  store an object
  del <bucket> <key>        delete an object
  keys <bucket>             list the keys of a bucket
  buckets                   list buckets
  props <bucket>            print bucket properties

flags:
  -addr host:port           server address (default 127.0.0.1:8087)
  -config path              TOML config file
  -ctype type               content type for put (default text/plain)
`

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "riakctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("riakctl", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	addr := fs.String("addr", "", "server address")
	configPath := fs.String("config", "", "TOML config file")
	ctype := fs.String("ctype", "text/plain", "content type for put")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg := defaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Address = *addr
	}

	if cfg.MetricsAddr != "" {
		observability.RegisterMetrics()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics listener")
			}
		}()
	}

	client, err := riak.Dial(cfg.Address)
	if err != nil {
		return err
	}
	defer client.Close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "ping":
		if err := client.Ping(); err != nil {
			return err
		}
		fmt.Println("pong")
		return nil

	case "info":
		info, err := client.ServerInfo()
		if err != nil {
			return err
		}
		fmt.Printf("node=%s version=%s\n", info.Node, info.ServerVersion)
		return nil

	case "get":
		if len(rest) != 2 {
			return fmt.Errorf("get needs <bucket> <key>")
		}
		resp, err := client.Get(&object.FetchRequest{Bucket: rest[0], Key: rest[1]})
		if err != nil {
			return err
		}
		if resp.NotFound {
			return fmt.Errorf("%s/%s: not found", rest[0], rest[1])
		}
		for i, c := range resp.Content {
			if len(resp.Content) > 1 {
				fmt.Printf("sibling %d (%s):\n", i, c.Vtag)
			}
			os.Stdout.Write(c.Value)
			fmt.Println()
		}
		return nil

	case "put":
		if len(rest) != 3 {
			return fmt.Errorf("put needs <bucket> <key> <value>")
		}
		// fetch first so an existing object is updated, not forked
		fetched, err := client.Get(&object.FetchRequest{Bucket: rest[0], Key: rest[1], Head: true})
		if err != nil {
			return err
		}
		content := object.NewContent([]byte(rest[2])).SetContentType(*ctype)
		_, err = client.Put(&object.StoreRequest{
			Bucket:  rest[0],
			Key:     rest[1],
			Content: *content,
			Vclock:  fetched.Vclock,
		})
		return err

	case "del":
		if len(rest) != 2 {
			return fmt.Errorf("del needs <bucket> <key>")
		}
		return client.Delete(&object.DeleteRequest{Bucket: rest[0], Key: rest[1]})

	case "keys":
		if len(rest) != 1 {
			return fmt.Errorf("keys needs <bucket>")
		}
		keys, err := client.ListKeys(rest[0])
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Printf("%s\n", k)
		}
		return nil

	case "buckets":
		buckets, err := client.ListBuckets()
		if err != nil {
			return err
		}
		for _, b := range buckets {
			fmt.Println(b)
		}
		return nil

	case "props":
		if len(rest) != 1 {
			return fmt.Errorf("props needs <bucket>")
		}
		props, err := client.GetBucketProps(rest[0], "")
		if err != nil {
			return err
		}
		if props.NVal != nil {
			fmt.Printf("n_val=%d\n", *props.NVal)
		}
		if props.AllowMult != nil {
			fmt.Printf("allow_mult=%t\n", *props.AllowMult)
		}
		if props.LastWriteWins != nil {
			fmt.Printf("last_write_wins=%t\n", *props.LastWriteWins)
		}
		if props.Backend != "" {
			fmt.Printf("backend=%s\n", props.Backend)
		}
		if props.SearchIndex != "" {
			fmt.Printf("search_index=%s\n", props.SearchIndex)
		}
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
