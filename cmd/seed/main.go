// Command seed wipes the songs collection and loads the sample library.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"songlibrary/internal/config"
	"songlibrary/internal/models"
	"songlibrary/internal/repositories"
)

var samples = []struct {
	title, artist, album, genre string
}{
	{"Shape of You", "Ed Sheeran", "Divide", "Pop"},
	{"Blinding Lights", "The Weeknd", "After Hours", "R&B"},
	{"Lose Yourself", "Eminem", "8 Mile", "Hip-Hop"},
	{"Billie Jean", "Michael Jackson", "Thriller", "Pop"},
	{"Smells Like Teen Spirit", "Nirvana", "Nevermind", "Rock"},
	{"Thinking Out Loud", "Ed Sheeran", "X", "Pop"},
	{"Starboy", "The Weeknd", "Starboy", "R&B"},
	{"HUMBLE.", "Kendrick Lamar", "DAMN.", "Hip-Hop"},
	{"Come As You Are", "Nirvana", "Nevermind", "Rock"},
	{"Beat It", "Michael Jackson", "Thriller", "Pop"},
	{"Bad Guy", "Billie Eilish", "When We All Fall Asleep, Where Do We Go?", "Pop"},
	{"Levitating", "Dua Lipa", "Future Nostalgia", "Pop"},
	{"Thunderstruck", "AC/DC", "The Razors Edge", "Rock"},
	{"Numb", "Linkin Park", "Meteora", "Rock"},
	{"Hey Ya!", "Outkast", "Speakerboxxx/The Love Below", "Hip-Hop"},
	{"Save Your Tears", "The Weeknd", "After Hours", "R&B"},
	{"Perfect", "Ed Sheeran", "Divide", "Pop"},
	{"Rockstar", "Post Malone", "Beerbongs & Bentleys", "Hip-Hop"},
	{"Billie Bossa Nova", "Billie Eilish", "Happier Than Ever", "Pop"},
	{"All of the Lights", "Kanye West", "My Beautiful Dark Twisted Fantasy", "Hip-Hop"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongodbDatabase)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	if _, err := db.DB.Collection("songs").DeleteMany(ctx, bson.M{}); err != nil {
		slog.Error("Failed to clear songs collection", "error", err)
		os.Exit(1)
	}

	songs := repositories.NewMongoSongRepository(db)
	for _, s := range samples {
		if err := songs.Insert(ctx, models.NewSong(s.title, s.artist, s.album, s.genre)); err != nil {
			slog.Error("Failed to insert song", "title", s.title, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Seeded songs", "count", len(samples))
}
