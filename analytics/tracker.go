package analytics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"water-gardens/client"
	"water-gardens/database"
	"water-gardens/helpers"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Tracker records catalog item visits in influxDB and periodically folds the
// aged counts back into the mongo documents. All of it is gated by
// USE_ANALYTICS so the API runs without the analytics store.
type Tracker struct {
	influxClient influxdb2.Client
	VisitorAPI   database.InfluxAPI
	collections  map[string]*mongo.Collection // domain -> collection
	Requests     *client.Registry
}

// known domains (must match the keys of the collections map)
const (
	DomainPlants  = "plants"
	DomainGardens = "gardens"
)

// SetConnections initializes the instance; without analytics enabled there
// is no influx connection and every tracker call no-ops
func (t *Tracker) SetConnections(influxClient *influxdb2.Client, mongoCollections map[string]*mongo.Collection) {
	t.collections = mongoCollections

	if *influxClient == nil {
		return
	}

	t.influxClient = *influxClient
	t.VisitorAPI.WriteAPI = t.influxClient.WriteAPIBlocking(os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET"))
	t.VisitorAPI.QueryAPI = t.influxClient.QueryAPI(os.Getenv("ANALYTICS_ORG"))
	t.VisitorAPI.DeleteAPI = t.influxClient.DeleteAPI()
}

// SaveVisit stores one visit event; a client re-requesting the item it just
// viewed (page refresh) is not counted
func (t *Tracker) SaveVisit(domain string, profileID string, clientIP string) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	id := domain + "_" + profileID

	if !t.Requests.Continue(clientIP, id) {
		return
	}

	// the domain is folded into the tag so aggregation queries can split
	// plants from gardens without a second tag
	p := influxdb2.NewPoint(
		"visit",
		map[string]string{"profileId": id},
		map[string]interface{}{"client": clientIP},
		time.Now())

	if err := t.VisitorAPI.WriteAPI.WritePoint(context.Background(), p); err != nil {
		fmt.Println(helpers.WrapError(err, helpers.FuncName()))
	}
}

// GetVisits counts the "live" visits of a catalog item since startDT, read
// from the analytics store (older visits have been folded into the document's
// visits counter by Replicate)
func (t *Tracker) GetVisits(domain string, profileID string, startDT time.Time) (int64, error) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return -1, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["profileId"] == "%s")
		|> count()
		|> yield(name: "count")`

	id := domain + "_" + profileID
	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		id)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	// single record expected
	var res interface{}
	for result.Next() {
		res = result.Record().Value()
	}

	var cnt int64 = 0
	if res != nil {
		cnt = res.(int64)
	}

	return cnt, nil
}

// Replicate folds visit counts older than one month into the catalog
// documents ($inc of the visits field) and removes them from the analytics
// store; called by the hourly maintenance goroutine
func (t *Tracker) Replicate() {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	ctx := context.Background()

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC) // minimum date, before the service existed
	stop := time.Now().AddDate(0, -1, 0)                 // everything older than one month moves

	// 1. count the aged visits per catalog item
	flux := `from(bucket: "%s")
	|> range(start: %s, stop: %s)
	|> filter(fn: (r) => r["_measurement"] == "visit")
	|> count()
	|> yield(name: "count")`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		start.Format(time.RFC3339),
		stop.Format(time.RFC3339))

	result, err := t.VisitorAPI.QueryAPI.Query(ctx, flux)
	if err != nil {
		fmt.Println(helpers.WrapError(err, helpers.FuncName()))
		return
	}

	// 2. build one update per item, bucketed by target collection
	opModels := make(map[string][]mongo.WriteModel)

	for result.Next() {
		// tag format is "<domain>_<hex id>"
		parts := strings.Split(result.Record().ValueByKey("profileId").(string), "_")
		if len(parts) != 2 {
			continue
		}

		operation := bson.D{
			{Key: "$inc", Value: bson.D{
				{Key: "visits", Value: result.Record().Value()},
			}},
		}

		opModel := mongo.NewUpdateOneModel()
		opModel.SetFilter(bson.D{{Key: "_id", Value: helpers.ObjectID(parts[1])}}).SetUpdate(operation)

		switch parts[0] {
		case DomainPlants, DomainGardens:
			opModels[parts[0]] = append(opModels[parts[0]], opModel)
		default:
			fmt.Println("ERROR: unknown analytics domain " + parts[0])
		}
	}

	var total int = 0
	for _, v := range opModels {
		total += len(v)
	}

	if total == 0 {
		fmt.Printf("%v: 0 item visits replicated.\n", time.Now().Format(time.RFC3339))
		return
	}

	// 3. write the counters (unordered bulk, items are independent)
	opts := options.BulkWrite().SetOrdered(false)

	var cnt int64 = 0
	for k, v := range opModels {
		res, err := t.collections[k].BulkWrite(ctx, v, opts)
		if err != nil {
			fmt.Println(helpers.WrapError(err, helpers.FuncName()))
			continue
		}
		cnt += res.MatchedCount
	}

	fmt.Printf("%v: %v item visit(s) replicated.\n", time.Now().Format(time.RFC3339), cnt)

	// 4. drop the replicated range from the analytics store
	err = t.VisitorAPI.DeleteAPI.DeleteWithName(ctx, os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET"), start, stop, "")
	if err != nil {
		// counts would be replicated twice on the next run
		fmt.Println(helpers.WrapError(err, helpers.FuncName()))
	}
}
