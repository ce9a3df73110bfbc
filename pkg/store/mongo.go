package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	rgerrors "github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/observability"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

const backendMongo = "mongo"

// Default MongoDB names.
const (
	DefaultDatabase   = "ringgauge"
	DefaultCollection = "snapshots"
)

// snapshotDoc is the stored form. The update payload holds free-form host
// values, so it is kept as JSON text rather than decoded into bson types.
type snapshotDoc struct {
	ID        string             `bson:"_id"`
	CreatedAt time.Time          `bson:"created_at"`
	Update    string             `bson:"update"`
	ViewModel settings.ViewModel `bson:"view_model"`
	Scene     gauge.Scene        `bson:"scene"`
	SVG       []byte             `bson:"svg"`
}

// MongoStore keeps snapshots in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configure [NewMongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects, pings the server and ensures the created_at index.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save implements Store.
func (m *MongoStore) Save(ctx context.Context, s *Snapshot) error {
	start := time.Now()
	doc, err := toDoc(s)
	if err == nil {
		_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, doc, options.Replace().SetUpsert(true))
	}
	observability.Store().OnSave(ctx, backendMongo, s.ID, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.ID, err)
	}
	return nil
}

// Get implements Store.
func (m *MongoStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	start := time.Now()
	var doc snapshotDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	observability.Store().OnLoad(ctx, backendMongo, id, err == nil, time.Since(start))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return fromDoc(doc)
}

// List implements Store.
func (m *MongoStore) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := m.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var docs []snapshotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := make([]*Snapshot, 0, len(docs))
	for _, d := range docs {
		s, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Delete implements Store.
func (m *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func toDoc(s *Snapshot) (snapshotDoc, error) {
	update, err := json.Marshal(s.Update)
	if err != nil {
		return snapshotDoc{}, fmt.Errorf("encode update: %w", err)
	}
	return snapshotDoc{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Update:    string(update),
		ViewModel: s.ViewModel,
		Scene:     s.Scene,
		SVG:       s.SVG,
	}, nil
}

func fromDoc(d snapshotDoc) (*Snapshot, error) {
	s := &Snapshot{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		ViewModel: d.ViewModel,
		Scene:     d.Scene,
		SVG:       d.SVG,
	}
	if d.Update != "" && d.Update != "null" {
		if err := json.Unmarshal([]byte(d.Update), &s.Update); err != nil {
			return nil, fmt.Errorf("decode stored update %s: %w", d.ID, err)
		}
	}
	return s, nil
}

var _ Store = (*MongoStore)(nil)
