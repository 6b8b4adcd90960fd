package main

// Analyze a resume from the command line without running the server:
//   go run ./cmd/atscheck resume.txt
//   cat resume.txt | go run ./cmd/atscheck -jd job.txt

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"resume-ats/internal/engine"
)

func main() {
	jdPath := flag.String("jd", "", "path to a job description to compare against")
	flag.Parse()

	text, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("read resume: %v", err)
	}

	var jobDescription string
	if *jdPath != "" {
		raw, err := os.ReadFile(*jdPath)
		if err != nil {
			log.Fatalf("read job description: %v", err)
		}
		jobDescription = string(raw)
	}

	analysis := engine.Analyze(text, jobDescription, engine.DefaultConfig())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	return string(raw), err
}
