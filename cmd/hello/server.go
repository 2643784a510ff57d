package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xoldyckk/hello"
)

type server struct {
	cfg    serverConfig
	logger *slog.Logger
}

// route maps a raw HTTP request line to a response.
type route struct {
	status string
	file   string
	sleep  time.Duration
}

func (s *server) routeFor(requestLine string) route {
	switch requestLine {
	case "GET / HTTP/1.1":
		return route{status: "HTTP/1.1 200 OK", file: "hello.html"}
	case "GET /sleep HTTP/1.1":
		// Stalls the handling worker on purpose, to show other workers
		// picking up requests in the meantime.
		return route{status: "HTTP/1.1 200 OK", file: "hello.html", sleep: s.cfg.SleepFor}
	default:
		return route{status: "HTTP/1.1 404 NOT FOUND", file: "404.html"}
	}
}

// serve accepts up to MaxRequests connections and hands each one to the pool,
// then returns so the caller can shut the pool down.
func (s *server) serve(ln net.Listener, pool *hello.ThreadPool) {
	for served := 0; served < s.cfg.MaxRequests; served++ {
		conn, err := ln.Accept()
		if err != nil {
			s.logger.Error("accept failed", slog.Any("error", err))
			continue
		}

		pool.Execute(func() {
			if err := s.handleConn(conn); err != nil {
				s.logger.Error("connection failed", slog.Any("error", err))
			}
		})
	}
}

// handleConn reads the request line, matches it against the fixed route table
// and writes a minimal HTTP response.
func (s *server) handleConn(conn net.Conn) error {
	defer conn.Close()

	requestLine, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read request line: %w", err)
	}
	requestLine = strings.TrimRight(requestLine, "\r\n")

	r := s.routeFor(requestLine)
	if r.sleep > 0 {
		time.Sleep(r.sleep)
	}

	body, err := os.ReadFile(filepath.Join(s.cfg.AssetsDir, r.file))
	if err != nil {
		return fmt.Errorf("read %s: %w", r.file, err)
	}

	response := fmt.Sprintf("%s\r\nContent-Length: %d\r\n\r\n%s", r.status, len(body), body)
	if _, err := conn.Write([]byte(response)); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}
