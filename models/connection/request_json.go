package connection

// 0-based coordinates on the AI board
type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}
