package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"gomoku3/internal/domain/game"
	errs "gomoku3/internal/errors"
)

const (
	gamesCollection = "games"
	sgfKeyPrefix    = "sgf:"
	queryTimeout    = 5 * time.Second
)

// GameRepository keeps game documents in MongoDB and the SGF text of each
// game in Redis.
type GameRepository struct {
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKey(ctx context.Context) string {
	return uuid.New().String()
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, gameData); err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return fmt.Errorf("%w: insert game: %v", errs.ErrInternal, err)
	}
	g.log.Infof("game inserted successfully with key: %s", gameData.GameKey)
	return nil
}

func (g *GameRepository) GetGameByKey(ctx context.Context, gameKey string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var result game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"game_key": gameKey}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameKey)
	}
	if err != nil {
		g.log.Errorw("failed to load game", "game_key", gameKey, "error", err)
		return game.Game{}, fmt.Errorf("%w: load game: %v", errs.ErrInternal, err)
	}
	return result, nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := g.mongo.Collection(gamesCollection).ReplaceOne(ctx, bson.M{"game_key": gameData.GameKey}, gameData)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return fmt.Errorf("%w: update game: %v", errs.ErrInternal, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameData.GameKey)
	}
	return nil
}

func (g *GameRepository) SaveSGF(ctx context.Context, gameKey string, sgfText string) error {
	if err := g.redis.Set(ctx, sgfKeyPrefix+gameKey, sgfText, 0).Err(); err != nil {
		return fmt.Errorf("%w: save sgf: %v", errs.ErrInternal, err)
	}
	return nil
}

func (g *GameRepository) LoadSGF(ctx context.Context, gameKey string) (string, error) {
	text, err := g.redis.Get(ctx, sgfKeyPrefix+gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: no sgf for %s", errs.ErrGameNotFound, gameKey)
	}
	if err != nil {
		return "", fmt.Errorf("%w: load sgf: %v", errs.ErrInternal, err)
	}
	return text, nil
}
