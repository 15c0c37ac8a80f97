package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

// PartnerRepository stores partners with a deleted_at marker; documents with
// a non-null marker are invisible to every method.
type PartnerRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewPartnerRepository(db *mongo.Database) *PartnerRepository {
	return &PartnerRepository{
		coll:  db.Collection(partnersCollection),
		users: db.Collection(usersCollection),
	}
}

type partnerDoc struct {
	ID        string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	MitraName string     `bson:"mitra_name"`
	Address   string     `bson:"address"`
	Contact   string     `bson:"contact"`
	Status    string     `bson:"status"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at"`
}

func (d *partnerDoc) toDomain() *domain.Partner {
	return &domain.Partner{
		ID:        d.ID,
		OwnerID:   d.UserID,
		MitraName: d.MitraName,
		Address:   d.Address,
		Contact:   d.Contact,
		Status:    domain.PartnerStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func live(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *PartnerRepository) Create(ctx context.Context, p *domain.Partner) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	doc := partnerDoc{
		ID:        p.ID,
		UserID:    p.OwnerID,
		MitraName: p.MitraName,
		Address:   p.Address,
		Contact:   p.Contact,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPartnerExists
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	p, err := r.findOne(ctx, live(bson.M{"_id": id}))
	if err != nil {
		return nil, err
	}
	if err := r.attachOwners(ctx, []*domain.Partner{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PartnerRepository) FindActiveByOwner(ctx context.Context, userID string) (*domain.Partner, error) {
	return r.findOne(ctx, live(bson.M{"user_id": userID}))
}

func (r *PartnerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d partnerDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("find partner: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PartnerRepository) Update(ctx context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.MitraName != nil {
		set["mitra_name"] = *u.MitraName
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.Contact != nil {
		set["contact"] = *u.Contact
	}
	if u.Status != nil {
		set["status"] = string(*u.Status)
	}

	if err := r.updateLive(ctx, id, set); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *PartnerRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.updateLive(ctx, id, bson.M{"deleted_at": now, "updated_at": now})
}

func (r *PartnerRepository) updateLive(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, live(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepository) List(ctx context.Context, f ports.ListPartnersFilter) ([]*domain.Partner, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count partners: %w", err)
	}

	opts := options.Find().
		SetSort(listSort(f)).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list partners: %w", err)
	}
	defer cur.Close(ctx)

	var docs []partnerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode partners: %w", err)
	}

	out := make([]*domain.Partner, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	if err := r.attachOwners(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// listFilter builds the live-partner query for f.
func listFilter(f ports.ListPartnersFilter) bson.M {
	filter := live(bson.M{})
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"mitra_name": re},
			bson.M{"address": re},
			bson.M{"contact": re},
		}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

func listSort(f ports.ListPartnersFilter) bson.D {
	dir := 1
	if f.SortDesc {
		dir = -1
	}
	return bson.D{{Key: f.SortBy, Value: dir}, {Key: "_id", Value: 1}}
}

// attachOwners loads the owner projection of every partner in one query.
// Deactivated owners are included.
func (r *PartnerRepository) attachOwners(ctx context.Context, partners []*domain.Partner) error {
	if len(partners) == 0 {
		return nil
	}
	ids := make([]string, 0, len(partners))
	for _, p := range partners {
		ids = append(ids, p.OwnerID)
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("load partner owners: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return fmt.Errorf("decode partner owners: %w", err)
	}

	owners := make(map[string]*domain.PartnerOwner, len(docs))
	for _, d := range docs {
		owners[d.ID] = &domain.PartnerOwner{UserID: d.ID, Username: d.Username, Email: d.Email, Role: domain.Role(d.Role)}
	}
	for _, p := range partners {
		p.Owner = owners[p.OwnerID]
	}
	return nil
}
