package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

var (
	chunksEndpoint string
	chunksIndex    string
	chunksBotID    string
	chunksFolderID string
	chunksBlobPath string
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Bulk-mutate index rows",
}

var chunksCountCmd = &cobra.Command{
	Use:   "count-unvectorized",
	Short: "Count the chunks of a bot still awaiting embeddings",
	RunE:  runChunksCount,
}

var chunksDeleteDocumentCmd = &cobra.Command{
	Use:   "delete-document [document-id]",
	Short: "Delete every row of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksDeleteDocument,
}

var chunksDeleteBotCmd = &cobra.Command{
	Use:   "delete-bot [bot-id]",
	Short: "Delete every row of a bot",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksDeleteBot,
}

var chunksMoveDocumentCmd = &cobra.Command{
	Use:   "move-document [document-id]",
	Short: "Rewrite the folder and blob path of a document's rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunksMoveDocument,
}

func init() {
	for _, c := range []*cobra.Command{chunksCountCmd, chunksDeleteDocumentCmd, chunksDeleteBotCmd, chunksMoveDocumentCmd} {
		c.Flags().StringVar(&chunksEndpoint, "endpoint", "", "endpoint URL (required)")
		c.Flags().StringVar(&chunksIndex, "index", "", "index name (required)")
	}
	chunksCountCmd.Flags().StringVar(&chunksBotID, "bot", "", "bot id (required)")
	chunksMoveDocumentCmd.Flags().StringVar(&chunksFolderID, "folder", "", "new document folder id")
	chunksMoveDocumentCmd.Flags().StringVar(&chunksBlobPath, "blob-path", "", "new blob path")

	chunksCmd.AddCommand(chunksCountCmd, chunksDeleteDocumentCmd, chunksDeleteBotCmd, chunksMoveDocumentCmd)
	rootCmd.AddCommand(chunksCmd)
}

func chunksTarget() (domain.IndexTarget, error) {
	if chunkService == nil {
		return domain.IndexTarget{}, errors.New("chunk service not configured")
	}
	if chunksEndpoint == "" || chunksIndex == "" {
		return domain.IndexTarget{}, errors.New("--endpoint and --index are required")
	}
	return domain.IndexTarget{
		Endpoint:  domain.Endpoint(chunksEndpoint),
		IndexName: chunksIndex,
	}, nil
}

func runChunksCount(cmd *cobra.Command, _ []string) error {
	target, err := chunksTarget()
	if err != nil {
		return err
	}
	if chunksBotID == "" {
		return errors.New("--bot is required")
	}

	count, err := chunkService.CountUnvectorized(context.Background(), target, chunksBotID)
	if err != nil {
		return err
	}
	cmd.Printf("%d unvectorized chunks\n", count)
	return nil
}

func runChunksDeleteDocument(cmd *cobra.Command, args []string) error {
	target, err := chunksTarget()
	if err != nil {
		return err
	}
	if err := chunkService.DeleteByDocument(context.Background(), target, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted rows of document %q\n", args[0])
	return nil
}

func runChunksDeleteBot(cmd *cobra.Command, args []string) error {
	target, err := chunksTarget()
	if err != nil {
		return err
	}
	if err := chunkService.DeleteByBot(context.Background(), target, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted rows of bot %q\n", args[0])
	return nil
}

func runChunksMoveDocument(cmd *cobra.Command, args []string) error {
	target, err := chunksTarget()
	if err != nil {
		return err
	}
	if chunksFolderID == "" && chunksBlobPath == "" {
		return errors.New("at least one of --folder or --blob-path is required")
	}
	if err := chunkService.MoveDocument(context.Background(), target, args[0], chunksFolderID, chunksBlobPath); err != nil {
		return err
	}
	cmd.Printf("Moved rows of document %q\n", args[0])
	return nil
}
