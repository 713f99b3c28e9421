package entity

const (
	EventMove           = "move"
	EventJump           = "jump"
	EventReverseHistory = "reverse-history"
	EventResetGame      = "reset-game"
	EventFilterText     = "filter-text"
	EventInStockOnly    = "in-stock-only"
)

// Event is a UI interaction. Only the fields relevant to Kind are read.
type Event struct {
	Kind  string `json:"kind"`
	Cell  int    `json:"cell"`
	Index int    `json:"index"`
	Text  string `json:"text,omitempty"`
	Flag  bool   `json:"flag,omitempty"`
}

func MoveEvent(cell int) Event {
	return Event{Kind: EventMove, Cell: cell}
}

func JumpEvent(index int) Event {
	return Event{Kind: EventJump, Index: index}
}

func ReverseHistoryEvent() Event {
	return Event{Kind: EventReverseHistory}
}

func ResetGameEvent() Event {
	return Event{Kind: EventResetGame}
}

func FilterTextEvent(text string) Event {
	return Event{Kind: EventFilterText, Text: text}
}

func InStockOnlyEvent(inStockOnly bool) Event {
	return Event{Kind: EventInStockOnly, Flag: inStockOnly}
}
