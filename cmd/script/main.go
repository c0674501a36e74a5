package main

import (
	"assetgraph/cmd"
	"assetgraph/internal/calculator"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assetgraph",
	Short: "explore the financial asset relationship graph from the command line",
}

var topN int

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "load the sample dataset and print graph metrics as json",
	RunE: func(c *cobra.Command, args []string) error {
		handler, err := cmd.InitializeDependencies(true)
		if err != nil {
			return err
		}
		metrics, err := calculator.CalculateMetrics(handler.Graph, topN)
		if err != nil {
			return err
		}
		return printJson(metrics)
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "load the sample dataset and print the 3d layout as json",
	RunE: func(c *cobra.Command, args []string) error {
		handler, err := cmd.InitializeDependencies(true)
		if err != nil {
			return err
		}
		return printJson(handler.LayoutGenerator.Layout(handler.Graph))
	},
}

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the http api seeded with the sample dataset",
	RunE: func(c *cobra.Command, args []string) error {
		handler, err := cmd.InitializeDependencies(true)
		if err != nil {
			return err
		}
		return handler.StartApi(port)
	},
}

func printJson(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	metricsCmd.Flags().IntVar(&topN, "top", 10, "number of top relationships to include")
	serveCmd.Flags().IntVar(&port, "port", 3009, "port to listen on")
	rootCmd.AddCommand(metricsCmd, layoutCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
