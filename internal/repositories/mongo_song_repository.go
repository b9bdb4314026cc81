package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"songlibrary/internal/models"
	"songlibrary/internal/query"
)

// mongoSongRepository implements SongRepository using MongoDB
type mongoSongRepository struct {
	collection *mongo.Collection
}

// NewMongoSongRepository creates a new MongoDB-backed song repository
func NewMongoSongRepository(db *models.Database) SongRepository {
	return &mongoSongRepository{
		collection: db.DB.Collection("songs"),
	}
}

// List returns one page of songs matching the query plus the total match count
func (r *mongoSongRepository) List(ctx context.Context, q query.ListQuery) ([]*models.Song, int64, error) {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list songs: %w", err)
	}
	defer cursor.Close(ctx)

	songs := make([]*models.Song, 0, q.Limit)
	for cursor.Next(ctx) {
		var song models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, 0, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate songs: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count songs: %w", err)
	}

	return songs, total, nil
}

// FindByID finds a song by its ObjectID. A malformed identifier maps to
// models.ErrSongNotFound without touching the store.
func (r *mongoSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSongNotFound
	}

	var song models.Song
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to find song by ID: %w", err)
	}
	return &song, nil
}

// Insert stores a new song and assigns its identifier
func (r *mongoSongRepository) Insert(ctx context.Context, song *models.Song) error {
	now := time.Now()
	song.CreatedAt = now
	song.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, song)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	song.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Replace overwrites all four text fields of an existing song and bumps
// updatedAt. createdAt is never touched.
func (r *mongoSongRepository) Replace(ctx context.Context, id string, input *models.SongInput) (*models.Song, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSongNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"title":     input.Title,
			"artist":    input.Artist,
			"album":     input.Album,
			"genre":     input.Genre,
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var song models.Song
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to replace song: %w", err)
	}
	return &song, nil
}

// DeleteByID deletes a song by its ID
func (r *mongoSongRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrSongNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrSongNotFound
	}
	return nil
}

// Overview returns distinct counts across the whole collection
func (r *mongoSongRepository) Overview(ctx context.Context) (*models.LibraryOverview, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count songs: %w", err)
	}

	overview := &models.LibraryOverview{SongsCount: total}
	for _, f := range []struct {
		field string
		dst   *int
	}{
		{"artist", &overview.ArtistsCount},
		{"album", &overview.AlbumsCount},
		{"genre", &overview.GenresCount},
	} {
		values, err := r.collection.Distinct(ctx, f.field, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to collect distinct %s values: %w", f.field, err)
		}
		*f.dst = len(values)
	}
	return overview, nil
}

// CountByGenre groups songs by case-folded genre, sorted by count descending
func (r *mongoSongRepository) CountByGenre(ctx context.Context) ([]models.GenreCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": bson.M{"$toLower": "$genre"}, "songsCount": bson.M{"$sum": 1}}},
		{"$project": bson.M{"_id": 0, "genre": "$_id", "songsCount": 1}},
		{"$sort": bson.M{"songsCount": -1}},
	}

	var rows []models.GenreCount
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("failed to count songs by genre: %w", err)
	}
	return rows, nil
}

// CountByArtist groups songs by case-folded artist with a distinct-album count
func (r *mongoSongRepository) CountByArtist(ctx context.Context) ([]models.ArtistCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":        bson.M{"$toLower": "$artist"},
			"songsCount": bson.M{"$sum": 1},
			"albums":     bson.M{"$addToSet": bson.M{"$toLower": "$album"}},
		}},
		{"$project": bson.M{
			"_id":         0,
			"artist":      "$_id",
			"songsCount":  1,
			"albumsCount": bson.M{"$size": "$albums"},
		}},
		{"$sort": bson.M{"songsCount": -1}},
	}

	var rows []models.ArtistCount
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("failed to count songs by artist: %w", err)
	}
	return rows, nil
}

// CountByAlbum groups songs by case-folded album, sorted by count descending
func (r *mongoSongRepository) CountByAlbum(ctx context.Context) ([]models.AlbumCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": bson.M{"$toLower": "$album"}, "songsCount": bson.M{"$sum": 1}}},
		{"$project": bson.M{"_id": 0, "album": "$_id", "songsCount": 1}},
		{"$sort": bson.M{"songsCount": -1}},
	}

	var rows []models.AlbumCount
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("failed to count songs by album: %w", err)
	}
	return rows, nil
}

// distinctFields lists the song fields exposed through DistinctValues
var distinctFields = map[string]bool{
	"genre":  true,
	"artist": true,
	"album":  true,
}

// DistinctValues returns the sorted, de-duplicated, blank-filtered values of
// one of the three denormalized string fields
func (r *mongoSongRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if !distinctFields[field] {
		return nil, fmt.Errorf("field %q does not support distinct values", field)
	}

	raw, err := r.collection.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to collect distinct %s values: %w", field, err)
	}

	return models.CleanDistinct(raw), nil
}

func (r *mongoSongRepository) aggregate(ctx context.Context, pipeline []bson.M, out interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
