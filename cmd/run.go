package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/index"
	"github.com/talachev/interview-pilot/internal/ingest"
	"github.com/talachev/interview-pilot/internal/interview"
	"github.com/talachev/interview-pilot/internal/logger"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var prompt = promptui.Select{
	Label: "Proceed with the interview?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate interview questions from the documents and run a scripted text interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("questions", "n", defaultQuestions, "number of interview questions to generate")
	runCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before starting the interview")

	viper.BindPFlag("questions", runCmd.Flags().Lookup("questions"))
}

// run generates the question set and walks it in order, collecting answers.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the "+app, zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	documents, err := prepareDocuments(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing documents", zap.Error(err))
	}

	clients, err := newAIClients(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating ai clients", zap.Error(err))
	}

	job, company, resume, err := buildRetrievers(ctx, clients, documents)
	if err != nil {
		logger.Fatal("building document indices", zap.Error(err))
	}

	generator := interview.NewGenerator(clients.completer, logger)

	questions, err := generator.Generate(ctx, job, company, resume, config.Questions)
	if err != nil {
		logger.Fatal("generating questions", zap.Error(err))
	}
	if len(questions) == 0 {
		logger.Fatal("the model returned no questions")
	}

	logger.Info("questions generated", zap.Int("count", len(questions)))
	for i, question := range questions {
		fmt.Printf("%d. %s\n", i+1, question)
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-aprove")
	if !autoApprove {
		_, answer, err := prompt.Run()
		if err != nil {
			logger.Fatal("prompt failed", zap.Error(err))
		}
		if answer != PromptYes {
			logger.Info("exiting")
			return
		}
	}

	transcript, err := interview.RunScripted(questions, interview.NewConsole())
	if err != nil {
		logger.Fatal("running the interview", zap.Error(err))
	}

	fmt.Println("\n--- Interview transcript ---")
	for _, entry := range transcript.Entries() {
		fmt.Printf("Q: %s\nA: %s\n\n", entry.Question, entry.Answer)
	}

	logger.Info("interview finished", zap.Int("answers", transcript.Len()))
}

// buildRetrievers embeds each document's chunks into its own in-memory index.
func buildRetrievers(ctx context.Context, clients *aiClients, documents *preparedDocuments) (job, company, resume *index.Retriever, err error) {
	stores := make([]*index.Store, 0, 3)
	for _, text := range []string{documents.job, documents.company, documents.resume} {
		store, err := index.Build(ctx, clients.embedder, ingest.ChunkText(text, indexChunkSize))
		if err != nil {
			return nil, nil, nil, err
		}
		stores = append(stores, store)
	}

	job = index.NewRetriever(stores[0], clients.embedder, clients.completer, 0)
	company = index.NewRetriever(stores[1], clients.embedder, clients.completer, 0)
	resume = index.NewRetriever(stores[2], clients.embedder, clients.completer, 0)

	return job, company, resume, nil
}
