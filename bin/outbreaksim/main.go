package main

import (
	"flag"
	"log"

	outbreaksim "github.com/wroclaw-epi/outbreaksim"
)

func main() {
	loggerType := flag.String("logger", "csv", "output logger type (csv|sqlite)")
	flag.Parse()

	configPath := flag.Arg(0)
	if configPath == "" {
		log.Fatal("usage: outbreaksim [-logger csv|sqlite] <parameter-file.json>")
	}

	params, err := outbreaksim.LoadParams(configPath)
	if err != nil {
		log.Fatal(err)
	}

	assembly, err := outbreaksim.LoadAssemblyInputs(params)
	if err != nil {
		log.Fatal(err)
	}

	var logger outbreaksim.DataLogger
	switch *loggerType {
	case "csv":
		logger = outbreaksim.NewCSVLogger(params.OutputRootDir, 1)
	case "sqlite":
		logger = outbreaksim.NewSQLiteLogger(params.OutputRootDir, 1)
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
	}
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	outcomes, err := outbreaksim.RunDriver(params, assembly.People, assembly.Households, assembly.Members)
	if err != nil {
		log.Fatal(err)
	}

	for _, outcome := range outcomes {
		log.Printf("run %s seed %d: stop=%s affected=%d deaths=%d end_time=%.2f",
			outcome.RunID, outcome.Seed, outcome.StopReason, outcome.Affected, outcome.Deaths, outcome.EndTime)
		if !params.LogOutputs {
			continue
		}
		if err := logger.WriteInfections(outcome.Infections); err != nil {
			log.Fatal(err)
		}
		if err := logger.WriteProgressions(outcome.Progressions); err != nil {
			log.Fatal(err)
		}
		if err := logger.WritePopulation(assembly.People, outcome.Status, outcome.Severity); err != nil {
			log.Fatal(err)
		}
	}

	if err := logger.WriteHouseholds(assembly.Households); err != nil {
		log.Fatal(err)
	}

	summary := outbreaksim.SummarizeOutcomes(outcomes)
	log.Printf("outbreak proba: %.4f mean outbreak time: %.2f mean affected when no outbreak: %.2f",
		summary.OutbreakProbability, summary.MeanOutbreakTime, summary.MeanAffectedOnNoOutbreak)
}
