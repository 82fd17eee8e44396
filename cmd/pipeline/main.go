// Command pipeline 원본 애니메이션 CSV를 처리하고 벡터 저장소를 구축하는 배치 작업입니다.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"anime-recommender/app"
	"anime-recommender/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer lg.Close()

	if _, err := app.NewPipeline(cfg, lg).Run(ctx); err != nil {
		return fmt.Errorf("%w (log: %s)", err, lg.Path())
	}
	return nil
}
