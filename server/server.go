// Package server exposes a live view of a running simulation over
// websockets: every committed tick and control action is pushed to all
// connected clients as JSON, and the current world is available over plain
// HTTP for initial hydration.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/volleysim/volleysim/sim"
)

// Feed bridges a controller's observer stream onto websocket clients.
type Feed struct {
	ctrl     *sim.Controller
	upgrader websocket.Upgrader
}

// NewFeed wraps a controller for serving.
func NewFeed(ctrl *sim.Controller) *Feed {
	return &Feed{
		ctrl: ctrl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP mux: /ws for the live feed, /state for a
// one-shot snapshot of the committed world.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", f.handleWS)
	mux.HandleFunc("/state", f.handleState)
	return mux
}

// ListenAndServe blocks serving the feed on addr.
func (f *Feed) ListenAndServe(addr string) error {
	logrus.Infof("watch feed listening on %s", addr)
	return http.ListenAndServe(addr, f.Handler())
}

func (f *Feed) handleState(w http.ResponseWriter, r *http.Request) {
	data, err := sim.SerializeWorldState(f.ctrl.World())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (f *Feed) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Buffered so a slow client drops updates instead of stalling the
	// simulation; the observer callback runs under the controller lock.
	updates := make(chan sim.Update, 256)
	unsubscribe := f.ctrl.Subscribe(func(u sim.Update) {
		select {
		case updates <- u:
		default:
		}
	})
	defer unsubscribe()

	// Hydrate the client with the current world before streaming deltas.
	if err := conn.WriteJSON(hydration{Kind: "world", World: f.ctrl.World()}); err != nil {
		return
	}

	// Read pump: the feed is one-way, reads only detect disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case u := <-updates:
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		}
	}
}

type hydration struct {
	Kind  string          `json:"kind"`
	World *sim.WorldState `json:"world"`
}
