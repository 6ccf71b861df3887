// Backfill dữ liệu planner cũ: điền monthKey thiếu (suy từ date/startDate)
// và createdAt/updatedAt thiếu (suy từ timestamp của _id).
// Mặc định chạy dry-run (chỉ đếm, không ghi); thêm --apply để ghi thật.
// Chạy: go run ./cmd/backfill [--apply] [--client <hex id>]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"content_planner/internal/utility"
)

func loadEnv() {
	tryPaths := []string{".env", "config/env/development.env"}
	cwd, _ := os.Getwd()
	for _, p := range tryPaths {
		full := filepath.Join(cwd, p)
		if _, err := os.Stat(full); err == nil {
			_ = godotenv.Load(full)
			return
		}
		parent := filepath.Dir(cwd)
		if _, err := os.Stat(filepath.Join(parent, p)); err == nil {
			_ = godotenv.Load(filepath.Join(parent, p))
			return
		}
	}
}

// stats đếm kết quả backfill của một collection
type stats struct {
	Scanned   int
	MonthKey  int
	Timestamp int
	Skipped   int
	Errors    int
}

// backfillCollection quét một collection item và điền các field thiếu.
// dateField là field nguồn để suy monthKey ("date" cho post/event, "startDate" cho paid).
func backfillCollection(ctx context.Context, coll *mongo.Collection, dateField string, clientID primitive.ObjectID, apply bool) stats {
	var s stats

	filter := bson.M{}
	if !clientID.IsZero() {
		filter["clientId"] = clientID
	}

	cursor, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.M{
		"_id":       1,
		"monthKey":  1,
		dateField:   1,
		"createdAt": 1,
		"updatedAt": 1,
	}))
	if err != nil {
		log.Printf("Find %s lỗi: %v", coll.Name(), err)
		s.Errors++
		return s
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			s.Errors++
			continue
		}
		s.Scanned++

		id, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			s.Skipped++
			continue
		}

		set := bson.M{}

		// monthKey thiếu hoặc sai format: suy từ date/startDate
		monthKey, _ := doc["monthKey"].(string)
		if !utility.IsMonthKey(monthKey) {
			dateKey, _ := doc[dateField].(string)
			if utility.IsDateKey(dateKey) {
				set["monthKey"] = utility.MonthKeyOf(dateKey)
			}
		}

		// createdAt/updatedAt thiếu hoặc bằng 0: lấy từ timestamp của _id
		idMillis := id.Timestamp().UnixMilli()
		if created := asInt64(doc["createdAt"]); created <= 0 {
			set["createdAt"] = idMillis
		}
		if updated := asInt64(doc["updatedAt"]); updated <= 0 {
			set["updatedAt"] = idMillis
		}

		if len(set) == 0 {
			s.Skipped++
			continue
		}

		if _, hasMonthKey := set["monthKey"]; hasMonthKey {
			s.MonthKey++
		}
		if _, hasCreated := set["createdAt"]; hasCreated {
			s.Timestamp++
		} else if _, hasUpdated := set["updatedAt"]; hasUpdated {
			s.Timestamp++
		}

		if !apply {
			continue
		}
		if _, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			log.Printf("Update %s/%s lỗi: %v", coll.Name(), id.Hex(), err)
			s.Errors++
		}
	}

	return s
}

// asInt64 đọc giá trị số từ bson.M (int64, int32 hoặc float64 tùy driver decode)
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func main() {
	apply := flag.Bool("apply", false, "ghi thay đổi thật (mặc định dry-run)")
	clientHex := flag.String("client", "", "chỉ backfill một client (hex id)")
	flag.Parse()

	loadEnv()
	uri := os.Getenv("MONGODB_CONNECTION_URI")
	dbName := os.Getenv("MONGODB_DBNAME")
	if uri == "" || dbName == "" {
		log.Fatal("Cần MONGODB_CONNECTION_URI và MONGODB_DBNAME")
	}

	var clientID primitive.ObjectID
	if *clientHex != "" {
		if !primitive.IsValidObjectID(*clientHex) {
			log.Fatalf("Client id không hợp lệ: %s", *clientHex)
		}
		clientID = utility.String2ObjectID(*clientHex)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Kết nối lỗi: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	if *apply {
		log.Println("Chạy với --apply: các thay đổi sẽ được ghi vào database")
	} else {
		log.Println("Dry-run: chỉ đếm, không ghi (thêm --apply để ghi thật)")
	}

	targets := []struct {
		Collection string
		DateField  string
	}{
		{"planner_posts", "date"},
		{"planner_events", "date"},
		{"planner_paids", "startDate"},
	}

	for _, target := range targets {
		s := backfillCollection(ctx, db.Collection(target.Collection), target.DateField, clientID, *apply)
		log.Printf("%s: quét %d, điền monthKey %d, điền timestamp %d, bỏ qua %d, lỗi %d",
			target.Collection, s.Scanned, s.MonthKey, s.Timestamp, s.Skipped, s.Errors)
	}

	log.Println("Hoàn tất backfill")
}
