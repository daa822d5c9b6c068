// meta/meta.go
package meta

// GAME is the game played when none is configured.
const GAME = "tictactoe"

// EXPERIMENT pairs the first agent against every other one.
const EXPERIMENT = "baseline"

// GAMES defines the number of games per matchup.
const GAMES = 10

// PARALLELISM defines the number of games played at once.
const PARALLELISM = 4

// MAX_TURNS defines the number of moves after which a game is abandoned.
const MAX_TURNS = 300

const LOG_LEVEL = "info"

const OUTPUT_DIR = "experiments"

// GOBAN_SIZE defines the side length of the Go board.
const GOBAN_SIZE = 5

// GOBAN_KOMI defines the points given to White.
const GOBAN_KOMI = 0.5

// SEARCH_DEPTH defines the depth limit of the default search agent.
const SEARCH_DEPTH = 4
