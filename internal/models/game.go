package models

type GameName string

const (
	GameTicTacToe   GameName = "tic-tac-toe"
	GameSudoku      GameName = "sudoku"
	GameDailyPuzzle GameName = "daily-puzzle"
)

type GameRecord struct {
	ID       string    `bson:"_id,omitempty" json:"id"`
	UserID   string    `bson:"user_id" json:"user_id" schema:"required"`
	GameName GameName  `bson:"game_name" json:"game_name" schema:"required" validate:"oneof=tic-tac-toe sudoku daily-puzzle"`
	Score    int       `bson:"score" json:"score"`
	Date     *DateTime `bson:"date" json:"date"`
}
