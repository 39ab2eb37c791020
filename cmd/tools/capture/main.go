// Capture loads the odds scoreboard in headless Chrome and prints every
// odds-service query URL the page issues. Operator tool for checking the
// query shape after an upstream change; the scrape pipeline itself never
// renders JS.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/kdvs/nflodds/internal/pkg/season"
)

const queryPattern = "ms-odds-v2/odds-v2-service?query="

func main() {
	if err := run(); err != nil {
		slog.Error("Capture failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	year := flag.Int("season", 2024, "season year")
	week := flag.Int("week", 1, "week number")
	wait := flag.Duration("wait", 10*time.Second, "how long to let the page load")
	flag.Parse()

	seid, err := season.SeasonID(*year)
	if err != nil {
		return err
	}
	egid, err := season.EventGroupID(*year, *week)
	if err != nil {
		return err
	}
	pageURL := fmt.Sprintf("https://odds.bookmakersreview.com/nfl/?egid=%d&seid=%d", egid, seid)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var mu sync.Mutex
	var matches []string
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if e, ok := ev.(*network.EventRequestWillBeSent); ok {
			if strings.Contains(e.Request.URL, queryPattern) {
				mu.Lock()
				matches = append(matches, e.Request.URL)
				mu.Unlock()
			}
		}
	})

	slog.Info("Loading scoreboard", "url", pageURL)
	err = chromedp.Run(ctx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(*wait),
	)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(matches) == 0 {
		slog.Warn("No odds-service requests observed")
		return nil
	}
	for _, u := range matches {
		fmt.Println(u)
	}
	return nil
}
