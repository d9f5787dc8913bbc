/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// wsPushInterval is how often the websocket endpoint pushes a fresh
// snapshot to each connected client.
const wsPushInterval = time.Second

// SnapshotFunc returns the current worker-stat registry snapshot as a value
// json.Marshal can serialize. Callers pass a closure over *workpool.Stats
// rather than this package depending on it directly.
type SnapshotFunc func() any

// Serve listens on addr and upgrades every request to a websocket that
// receives a JSON snapshot from snapshot once per second until the
// connection closes or ctx is canceled — purely observational, grounded on
// the same upgrade-then-push-loop idiom the storage engine this tool grew
// out of uses for its own network-exposed websocket primitive. It blocks
// until ctx is canceled.
func Serve(ctx context.Context, addr string, snapshot SnapshotFunc) error {
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	mux := http.NewServeMux()
	mux.HandleFunc("/progress", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(wsPushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				data, err := json.Marshal(snapshot())
				if err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
