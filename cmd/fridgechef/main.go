package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"fridgechef/internal/ai"
	"fridgechef/internal/config"
	"fridgechef/internal/pantry"
	"fridgechef/internal/telemetry"
)

func main() {
	var serve bool
	var addr string
	var ingredients string
	var meal string
	var help bool

	flag.BoolVar(&serve, "serve", false, "Run HTTP server mode")
	flag.StringVar(&addr, "addr", "", "Address to bind in server mode (overrides FRIDGECHEF_ADDR)")
	flag.StringVar(&ingredients, "ingredients", "", "Comma-separated ingredients for one-shot mode")
	flag.StringVar(&ingredients, "i", "", "Comma-separated ingredients (short form)")
	flag.StringVar(&meal, "meal", "breakfast", "Meal time: breakfast, lunch or dinner")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	// local convenience; real deployments inject the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init telemetry: %v", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("telemetry shutdown error", "error", err)
		}
	}()

	if addr == "" {
		addr = cfg.Addr
	}

	if serve {
		if err := runServer(cfg, addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if ingredients == "" {
		fmt.Println("Error: provide -ingredients for one-shot mode, or -serve for web mode")
		showHelp()
		os.Exit(1)
	}

	if err := run(ctx, cfg, ingredients, meal); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, rawIngredients, rawMeal string) error {
	mealTime, err := pantry.ParseMealTime(rawMeal)
	if err != nil {
		return err
	}

	var list pantry.List
	for _, ingredient := range strings.Split(rawIngredients, ",") {
		list.Add(ingredient)
	}
	if list.Len() == 0 {
		return fmt.Errorf("no usable ingredients in %q", rawIngredients)
	}

	client := ai.NewClient(config.CredentialCell(), cfg.TextModel, cfg.ImageModel)
	batch, err := client.GenerateRecipes(ctx, list.Items(), mealTime)
	if err != nil {
		return fmt.Errorf("failed to generate recipes: %w", err)
	}

	for i, recipe := range batch.Recipes {
		fmt.Printf("%d. %s\n   %s\n", i+1, recipe.Title, recipe.Description)
		for _, step := range recipe.Steps {
			fmt.Printf("   - %s\n", step)
		}
		fmt.Println()
	}
	return nil
}

func showHelp() {
	fmt.Println("Fridge Chef - recipe ideas from whatever is in your refrigerator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fridgechef -serve [-addr :8080]")
	fmt.Println("  fridgechef -ingredients \"egg,onion\" -meal lunch")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -serve             Run the web UI")
	fmt.Println("  -addr              Bind address in server mode")
	fmt.Println("  -ingredients, -i   Comma-separated ingredient list (one-shot mode)")
	fmt.Println("  -meal              breakfast, lunch or dinner")
	fmt.Println("  -help, -h          Show this help message")
}
