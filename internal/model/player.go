package model

// EnginePlayerID identifies the seat taken by the search engine.
const EnginePlayerID = "engine"

type Player struct {
	ID   string
	Side Side
}

type ClientPlayer struct {
	ID         string `json:"name"`
	Side       Side   `json:"side"`
	ThinkingMs int64  `json:"thinkingMs"`
}
