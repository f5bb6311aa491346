// Program duxecho is a small TCP server built on duplexchan: it accepts
// line-protocol connections and echoes each line back upper-cased. It
// exists to exercise Channel, the Line filter, and Options end to end
// against a real socket, the way examples/server/server.go exercises
// bitbucket.org/creachadair/jrpc2's Server.
//
// Usage:
//
//	go build github.com/colebennett/duplexchan/cmd/duxecho
//	./duxecho -config duxecho.toml
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/colebennett/duplexchan"
	"github.com/colebennett/duplexchan/filter"
	"github.com/colebennett/duplexchan/transport"
)

// config is the shape of the TOML file passed via -config.
type config struct {
	Addr              string `toml:"addr"`
	ReceiveBufferSize int    `toml:"receive_buffer_size"`
	MaxPackageLength  int    `toml:"max_package_length"`
	QueueSize         int    `toml:"queue_size"`
}

var configPath = flag.String("config", "", "Path to a TOML configuration file")

func loadConfig(path string) config {
	cfg := config{Addr: ":8080"}
	if path == "" {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Fatalf("duxecho: reading config %s: %v", path, err)
	}
	return cfg
}

func main() {
	flag.Parse()
	cfg := loadConfig(*configPath)

	lst, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("duxecho: listen: %v", err)
	}
	log.Printf("duxecho: listening on %s", lst.Addr())

	for {
		conn, err := lst.Accept()
		if err != nil {
			log.Printf("duxecho: accept: %v", err)
			continue
		}
		go serve(conn, cfg)
	}
}

func serve(conn net.Conn, cfg config) {
	defer conn.Close()

	opts := &duplexchan.Options{
		ReceiveBufferSize: cfg.ReceiveBufferSize,
		MaxPackageLength:  cfg.MaxPackageLength,
		QueueSize:         cfg.QueueSize,
		LogWriter:         os.Stderr,
	}
	t := transport.NewStream(conn, 0)
	ch := duplexchan.NewChannel[string](t, filter.NewLine(), opts)

	ctx := context.Background()
	for line := range ch.Run() {
		reply := strings.ToUpper(line)
		if err := ch.SendEncoded(ctx, filter.LineEncoder{}, reply); err != nil {
			log.Printf("duxecho: %s: send: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
