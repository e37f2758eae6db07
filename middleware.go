package main

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ipLimiters hands out one token bucket per client IP for the public
// response endpoints. Buckets idle for an hour are evicted.
type ipLimiters struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters() *ipLimiters {
	l := &ipLimiters{buckets: make(map[string]*ipBucket)}
	go func() {
		for range time.Tick(10 * time.Minute) {
			l.mu.Lock()
			for ip, b := range l.buckets {
				if time.Since(b.lastSeen) > time.Hour {
					delete(l.buckets, ip)
				}
			}
			l.mu.Unlock()
		}
	}()
	return l
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[ip]
	if !ok {
		// 1 req/s sustained, bursts of 10: plenty for a human filling a
		// price grid, hostile to token scanning.
		b = &ipBucket{limiter: rate.NewLimiter(rate.Every(time.Second), 10)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

var publicLimiters = newIPLimiters()

// rateLimit throttles the unauthenticated supplier endpoints per client IP.
// Buyer-side routes are not limited.
func rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/cotacao/") {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !publicLimiters.get(ip).Allow() {
				jsonErr(w, "too many requests", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
