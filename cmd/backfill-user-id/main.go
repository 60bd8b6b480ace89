package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/miyannishar/eco-logic-backend/internal/platform/envutil"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/platform/mongodb"
)

// Renames the legacy dash-separated report keys to their canonical snake
// case spellings. The read path tolerates both, so this can run at any time;
// once it has run everywhere the legacy arm of the lookup filter is dead.
var legacyKeyRenames = bson.M{
	"user-id":         "user_id",
	"report-category": "report_category",
	"file-id":         "file_id",
	"report-content":  "report_content",
}

func main() {
	var dryRun bool
	var limit int
	flag.BoolVar(&dryRun, "dry-run", false, "print matching documents without updating")
	flag.IntVar(&limit, "limit", 0, "limit number of documents processed")
	flag.Parse()

	log, err := logger.New(envutil.Str("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	mongo, err := mongodb.NewService(ctx, log,
		envutil.Str("MONGO_URI", "mongodb://localhost:27017"),
		envutil.Str("MONGO_DB", "eco-logic"),
	)
	if err != nil {
		fmt.Printf("init mongodb: %v\n", err)
		os.Exit(1)
	}
	defer mongo.Close(ctx)

	reports := mongo.Database().Collection("reports")

	legacyOr := make(bson.A, 0, len(legacyKeyRenames))
	for legacy := range legacyKeyRenames {
		legacyOr = append(legacyOr, bson.M{legacy: bson.M{"$exists": true}})
	}
	filter := bson.M{"$or": legacyOr}

	cur, err := reports.Find(ctx, filter)
	if err != nil {
		fmt.Printf("find legacy documents: %v\n", err)
		os.Exit(1)
	}
	defer cur.Close(ctx)

	processed := 0
	updated := 0
	for cur.Next(ctx) {
		if limit > 0 && processed >= limit {
			break
		}
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			fmt.Printf("decode document: %v\n", err)
			continue
		}
		processed++

		renames := bson.M{}
		for legacy, canonical := range legacyKeyRenames {
			if _, ok := doc[legacy]; !ok {
				continue
			}
			// A canonical value written after the cutover wins; just drop
			// the stale legacy key.
			if _, ok := doc[canonical.(string)]; ok {
				continue
			}
			renames[legacy] = canonical
		}
		unsets := bson.M{}
		for legacy, canonical := range legacyKeyRenames {
			if _, hasLegacy := doc[legacy]; !hasLegacy {
				continue
			}
			if _, hasCanonical := doc[canonical.(string)]; hasCanonical {
				unsets[legacy] = ""
			}
		}
		if len(renames) == 0 && len(unsets) == 0 {
			continue
		}

		if dryRun {
			fmt.Printf("[dry-run] _id=%v rename=%d drop=%d\n", doc["_id"], len(renames), len(unsets))
			continue
		}

		update := bson.M{}
		if len(renames) > 0 {
			update["$rename"] = renames
		}
		if len(unsets) > 0 {
			update["$unset"] = unsets
		}
		if _, err := reports.UpdateByID(ctx, doc["_id"], update); err != nil {
			fmt.Printf("update _id=%v failed: %v\n", doc["_id"], err)
			continue
		}
		updated++
	}
	if err := cur.Err(); err != nil {
		fmt.Printf("iterate documents: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("processed=%d updated=%d dry_run=%v\n", processed, updated, dryRun)
}
