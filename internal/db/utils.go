package db

import (
	"fmt"

	dbpkg "github.com/dtnitsch/wordfreq/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runID, err := database.GetLatestRunID()
		if err != nil {
			return 0, fmt.Errorf("%w. Run 'wordfreq count --archive <file>' first", err)
		}
		return runID, nil
	}

	var runID int64
	_, err := fmt.Sscanf(c.Args().First(), "%d", &runID)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
