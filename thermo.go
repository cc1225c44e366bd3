package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// 結果ファイル名
const resultFileName = "results.csv"

/*
状態計算の実行

	Args:
		ctx
		cfg: 入力ファイル, 出力フォルダ, ワーカー数, 数値計算の種類

	Returns:
		the number of failed cases; err only for input or output failures
*/
func run(ctx context.Context, cfg Config) (int, error) {
	// ---- 事前準備 ----

	// 出力ディレクトリの作成
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	// 計算ケースCSVファイルの読み込み
	log.Printf("計算ケースの読み込み開始: %s", cfg.InputPath)
	cases, err := readCases(cfg.InputPath)
	if err != nil {
		return 0, err
	}
	log.Printf("%d cases, numerics=%s, workers=%d", len(cases), cfg.Numerics.Name, cfg.Workers)

	// ---- 計算 ----

	outcomes, err := NewSequence(cfg.Numerics, cfg.Workers).Run(ctx, cases)
	if err != nil {
		return 0, err
	}

	recorder := NewRecorder()
	for _, o := range outcomes {
		if o.Err != nil {
			log.Printf("case %q: %v", o.Case.Name, o.Err)
		}
		recorder.recording(o)
	}

	// ---- 計算結果ファイルの保存 ----

	result_path := filepath.Join(cfg.OutputDir, resultFileName)
	log.Printf("Save results to `%s`", result_path)
	if err := recorder.export(result_path); err != nil {
		return 0, err
	}
	return recorder.failed, nil
}

func readCases(path string) ([]*Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var cases []*Case
	if err := gocsv.UnmarshalFile(file, &cases); err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return cases, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()

	failed, err := run(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		log.Printf("%d cases failed", failed)
	}

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
