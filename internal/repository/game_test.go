package repo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"gomoku3/internal/domain/game"
	errs "gomoku3/internal/errors"
)

func TestGameRepositoryMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	log := zap.NewNop().Sugar()

	mt.Run("put game", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := repo.PutGame(context.Background(), game.Game{GameKey: "k1"}); err != nil {
			mt.Fatal(err)
		}
	})

	mt.Run("put game write error", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		if err := repo.PutGame(context.Background(), game.Game{GameKey: "k1"}); !errors.Is(err, errs.ErrInternal) {
			mt.Fatalf("expected internal error, got %v", err)
		}
	})

	mt.Run("get game", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		ns := mt.DB.Name() + "." + gamesCollection
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "game_key", Value: "k1"},
			{Key: "status", Value: game.StatusActive},
			{Key: "board_size", Value: 7},
			{Key: "who_is_next", Value: "w"},
			{Key: "moves", Value: bson.A{bson.D{{Key: "color", Value: "b"}, {Key: "coordinates", Value: "D4"}}}},
		})
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		got, err := repo.GetGameByKey(context.Background(), "k1")
		if err != nil {
			mt.Fatal(err)
		}
		if got.GameKey != "k1" || got.BoardSize != 7 || got.WhoIsNext != "w" || len(got.Moves) != 1 || got.Moves[0].Coordinates != "D4" {
			mt.Fatalf("unexpected game %+v", got)
		}
	})

	mt.Run("get missing game", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+gamesCollection, mtest.FirstBatch))
		if _, err := repo.GetGameByKey(context.Background(), "nope"); !errors.Is(err, errs.ErrGameNotFound) {
			mt.Fatalf("expected game not found, got %v", err)
		}
	})

	mt.Run("update missing game", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		if err := repo.UpdateGame(context.Background(), game.Game{GameKey: "nope"}); !errors.Is(err, errs.ErrGameNotFound) {
			mt.Fatalf("expected game not found, got %v", err)
		}
	})

	mt.Run("update game", func(mt *mtest.T) {
		repo := NewGameRepository(log, nil, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		if err := repo.UpdateGame(context.Background(), game.Game{GameKey: "k1"}); err != nil {
			mt.Fatal(err)
		}
	})
}

func TestGenerateGameKeyIsUnique(t *testing.T) {
	repo := NewGameRepository(zap.NewNop().Sugar(), nil, nil)
	a := repo.GenerateGameKey(context.Background())
	b := repo.GenerateGameKey(context.Background())
	if a == "" || a == b {
		t.Fatalf("keys must be unique and non-empty: %q %q", a, b)
	}
}
