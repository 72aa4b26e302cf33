package server

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/model_problems/GapFillDiffusion2D"
)

// Msg is the request/response envelope exchanged with viewers.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ProgressFrame reports solver residual history while a case runs.
type ProgressFrame struct {
	Iteration int     `json:"iteration"`
	Residual  float64 `json:"residual"`
}

// FieldFrame carries the solved field on the mesh skeleton for rendering.
type FieldFrame struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Cells  [][]int   `json:"cells"`
	Values []float32 `json:"values"`
	MaxErr float64   `json:"max_err"`
	RMSErr float64   `json:"rms_err"`
}

// Hub pairs one viewer connection with one case run and routes messages
// between them. All writes to the connection happen on the response
// goroutine.
type Hub struct {
	conn   *websocket.Conn
	params *InputParameters.CaseParameters
	// request
	msg chan Msg
	// response
	paramsSet chan Msg
	started   chan Msg
	stopped   chan Msg
	done      chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		params:    InputParameters.NewCaseParameters(),
		msg:       make(chan Msg, 10),
		paramsSet: make(chan Msg, 10),
		started:   make(chan Msg, 10),
		stopped:   make(chan Msg, 10),
		done:      make(chan struct{}),
	}
}

func (h *Hub) handleRequest() {
	defer close(h.done)
	for msg := range h.msg {
		switch msg.Type {
		case "params":
			if err := h.params.Parse([]byte(msg.Content)); err != nil {
				log.Error("bad case parameters: ", err)
				h.paramsSet <- Msg{Type: "error", Content: err.Error()}
				continue
			}
			h.paramsSet <- Msg{Type: "paramsSet", Content: h.params.Title}
		case "start":
			h.started <- Msg{Type: "started"}
		case "stop":
			h.stopped <- Msg{Type: "stopped", Content: "stopped"}
		default:
			log.Warn("no such type: ", msg.Type)
		}
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.paramsSet:
			h.write(reply)
		case reply := <-h.started:
			h.write(reply)
			h.runCase()
		case reply := <-h.stopped:
			h.write(reply)
		case <-h.done:
			return
		}
	}
}

// runCase solves the gap fill diffusion case with the current parameters,
// streaming residuals as the iterations progress and the solved field at the
// end.
func (h *Hub) runCase() {
	d, err := GapFillDiffusion2D.NewDiffusion(h.params.GapFillParams(), h.params.Gamma, nil)
	if err != nil {
		h.write(Msg{Type: "error", Content: err.Error()})
		return
	}
	d.Tolerance = h.params.Tolerance
	d.MaxIterations = h.params.MaxIterations
	_, err = d.Solve(func(iteration int, residual float64) {
		if iteration%10 != 0 {
			return
		}
		frame, _ := json.Marshal(ProgressFrame{Iteration: iteration, Residual: residual})
		h.write(Msg{Type: "progress", Content: string(frame)})
	})
	if err != nil {
		h.write(Msg{Type: "error", Content: err.Error()})
		return
	}
	frame, err := json.Marshal(h.buildFieldFrame(d))
	if err != nil {
		h.write(Msg{Type: "error", Content: err.Error()})
		return
	}
	h.write(Msg{Type: "field", Content: string(frame)})
}

func (h *Hub) buildFieldFrame(d *GapFillDiffusion2D.Diffusion) FieldFrame {
	var (
		m  = d.GFM.Mesh
		ff = FieldFrame{
			X:      make([]float64, m.NumVertices),
			Y:      make([]float64, m.NumVertices),
			Cells:  m.Cells,
			Values: d.Phi.VertexValues(),
			MaxErr: d.MaxError(),
			RMSErr: d.RMSError(),
		}
	)
	for i, v := range m.Vertices {
		ff.X[i] = v[0]
		ff.Y[i] = v[1]
	}
	return ff
}

func (h *Hub) write(reply Msg) {
	if err := h.conn.WriteJSON(&reply); err != nil {
		log.Error("write: ", err)
	}
}
