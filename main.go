package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"anime-recommender/app"
	"anime-recommender/config"
	"anime-recommender/db"
	"anime-recommender/logger"
	"anime-recommender/ui"
)

func main() {
	// 플래그 파싱
	reload := flag.Bool("reload", false, "rebuild the processed CSV and vector store before answering")
	query := flag.String("query", "", "answer a single query and exit instead of starting the TUI")
	show := flag.String("doc", "", "print the stored document with this ID and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Close()

	// 저장소가 없거나 비어 있으면 (이전 실행이 실패한 경우 포함) 다시 빌드합니다
	needsBuild, err := app.NeedsBuild(cfg)
	if err != nil {
		lg.Close()
		log.Fatalf("check vector store: %v", err)
	}

	if *reload || needsBuild {
		if !*reload {
			fmt.Printf("Vector store %s is missing or empty, building it now...\n", cfg.VectorStorePath)
		}
		if err := runPipeline(ctx, cfg, lg); err != nil {
			lg.Close()
			log.Fatalf("%v (see %s)", err, lg.Path())
		}
	}

	if *show != "" {
		if err := showDocument(ctx, cfg, *show); err != nil {
			lg.Close()
			log.Fatalf("show document: %v", err)
		}
		return
	}

	recommender, closeRec, err := app.NewRecommender(ctx, cfg, lg)
	if err != nil {
		lg.Close()
		log.Fatalf("init recommender: %v", err)
	}
	defer closeRec()

	if *query != "" {
		answer, err := recommender.GetRecommendations(ctx, *query)
		if err != nil {
			closeRec()
			lg.Close()
			log.Fatalf("recommend: %v", err)
		}
		fmt.Println(answer)
		return
	}

	if err := ui.Run(ctx, recommender); err != nil {
		closeRec()
		lg.Close()
		log.Fatalf("run tui: %v", err)
	}
}

// runPipeline 처리 CSV와 벡터 저장소를 다시 만듭니다
func runPipeline(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	p := app.NewPipeline(cfg, lg)

	fmt.Println("Building vector store from", cfg.SourceCSV)
	report, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d anime (%d rows dropped, %d lines skipped)\n",
		report.Documents, report.Load.RowsDropped, report.Load.LinesSkipped)
	return nil
}

// showDocument 저장된 문서 하나를 출력합니다
func showDocument(ctx context.Context, cfg *config.Config, id string) error {
	store, err := db.NewStore(cfg.VectorStorePath)
	if err != nil {
		return err
	}
	doc, err := store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] %s\n", doc.ID, doc.Content)
	return nil
}
