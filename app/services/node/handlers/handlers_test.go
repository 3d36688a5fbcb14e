package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/sealchain/app/services/node/handlers"
	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
	"github.com/ardanlabs/sealchain/foundation/blockchain/state"
	"github.com/ardanlabs/sealchain/foundation/blockchain/worker"
	"github.com/ardanlabs/sealchain/foundation/events"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type block struct {
	Number uint64 `json:"number"`
	Hash   string `json:"hash"`
	database.Block
}

func newMux() (http.Handler, *state.State, *events.Events) {
	evts := events.New()
	ev := func(v string, args ...any) {
		evts.Send(fmt.Sprintf(v, args...))
	}

	reward := 50.0
	st := state.New(state.Config{
		MinerAddress: "M",
		Difficulty:   1,
		Reward:       &reward,
		EvHandler:    ev,
	})

	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown:    make(chan os.Signal, 1),
		Log:         zap.NewNop().Sugar(),
		State:       st,
		Evts:        evts,
		CorsOrigins: []string{"*"},
	})

	return mux, st, evts
}

// waitFor polls the condition until it holds or the timeout passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func call(mux http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	return w
}

// =============================================================================

func Test_Chain(t *testing.T) {
	mux, st, _ := newMux()

	t.Log("Given the need to drive the chain over http.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen submitting and sealing a transaction.", testID)
		{
			w := call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A","receiver":"B","amount":10}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould accept the transaction, got %d: %s", failed, testID, w.Code, w.Body)
			}
			if st.QueryMempoolLength() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould add the transaction to the mempool.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould accept the transaction.", success, testID)

			w = call(mux, http.MethodPost, "/v1/block/seal", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould seal the block, got %d: %s", failed, testID, w.Code, w.Body)
			}

			var blk block
			if err := json.Unmarshal(w.Body.Bytes(), &blk); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould decode the sealed block: %v", failed, testID, err)
			}
			if blk.Number != 1 || len(blk.Trans) != 2 || blk.Trans[1] != database.NewTx("A", "B", 10) {
				t.Fatalf("\t%s\tTest %d:\tShould return the sealed block: %+v", failed, testID, blk)
			}
			t.Logf("\t%s\tTest %d:\tShould seal the block.", success, testID)

			w = call(mux, http.MethodGet, "/v1/blocks/list", "")

			var blocks []block
			if err := json.Unmarshal(w.Body.Bytes(), &blocks); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould decode the blocks: %v", failed, testID, err)
			}
			if len(blocks) != 2 || blocks[1].Header.PrevBlockHash != blocks[0].Hash {
				t.Fatalf("\t%s\tTest %d:\tShould list linked blocks: %+v", failed, testID, blocks)
			}
			t.Logf("\t%s\tTest %d:\tShould list linked blocks.", success, testID)

			w = call(mux, http.MethodGet, "/v1/chain/validate", "")
			if !strings.Contains(w.Body.String(), `"valid":true`) {
				t.Fatalf("\t%s\tTest %d:\tShould validate the chain: %s", failed, testID, w.Body)
			}
			t.Logf("\t%s\tTest %d:\tShould validate the chain.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen sending bad requests.", testID)
		{
			w := call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A"}`)
			if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "receiver") {
				t.Fatalf("\t%s\tTest %d:\tShould reject a missing receiver, got %d: %s", failed, testID, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a missing receiver.", success, testID)

			w = call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A","receiver":"B","fee":1}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest %d:\tShould reject unknown fields, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould reject unknown fields.", success, testID)

			if w := call(mux, http.MethodGet, "/v1/blocks/9", ""); w.Code != http.StatusNotFound {
				t.Fatalf("\t%s\tTest %d:\tShould not find block 9, got %d.", failed, testID, w.Code)
			}
			if w := call(mux, http.MethodGet, "/v1/blocks/x", ""); w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest %d:\tShould reject a bad block number, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould handle bad block numbers.", success, testID)

			if w := call(mux, http.MethodPut, "/v1/chain/difficulty", `{}`); w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest %d:\tShould require a difficulty, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould require a difficulty.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen changing the chain settings.", testID)
		{
			call(mux, http.MethodPut, "/v1/chain/difficulty", `{"difficulty":2}`)
			call(mux, http.MethodPut, "/v1/chain/reward", `{"reward":7.5}`)

			w := call(mux, http.MethodGet, "/v1/chain/status", "")

			var s struct {
				LastHash   string  `json:"last_hash"`
				Height     int     `json:"height"`
				Difficulty uint    `json:"difficulty"`
				Reward     float64 `json:"reward"`
				Miner      string  `json:"miner"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould decode the status: %v", failed, testID, err)
			}
			if s.Difficulty != 2 || s.Reward != 7.5 || s.Miner != "M" || s.Height != 2 || s.LastHash != st.LastHeaderHash() {
				t.Fatalf("\t%s\tTest %d:\tShould report the new settings: %+v", failed, testID, s)
			}
			t.Logf("\t%s\tTest %d:\tShould report the new settings.", success, testID)
		}
	}
}

func Test_Pending(t *testing.T) {
	mux, _, _ := newMux()

	t.Log("Given the need to list the pending transactions.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen two transactions are submitted.", testID)
		{
			call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A","receiver":"B","amount":10}`)
			call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"C","receiver":"D","amount":3}`)

			w := call(mux, http.MethodGet, "/v1/tx/pending", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould list the pending transactions, got %d.", failed, testID, w.Code)
			}

			var pending []database.Tx
			if err := json.Unmarshal(w.Body.Bytes(), &pending); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould decode the pending transactions: %v", failed, testID, err)
			}

			exp := []database.Tx{database.NewTx("A", "B", 10), database.NewTx("C", "D", 3)}
			if len(pending) != len(exp) || pending[0] != exp[0] || pending[1] != exp[1] {
				t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, pending)
				t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, exp)
				t.Fatalf("\t%s\tTest %d:\tShould list them in pool order.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould list them in pool order.", success, testID)

			call(mux, http.MethodPost, "/v1/block/seal", "")

			w = call(mux, http.MethodGet, "/v1/tx/pending", "")
			if err := json.Unmarshal(w.Body.Bytes(), &pending); err != nil || len(pending) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould drain the pool after a seal: %s", failed, testID, w.Body)
			}
			t.Logf("\t%s\tTest %d:\tShould drain the pool after a seal.", success, testID)
		}
	}
}

func Test_SignalMining(t *testing.T) {
	mux, st, _ := newMux()
	worker.Run(st, 0, nil)
	defer st.Shutdown()

	t.Log("Given the need to seal blocks in the background.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen signaling the worker.", testID)
		{
			call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A","receiver":"B","amount":10}`)

			w := call(mux, http.MethodPost, "/v1/mining/signal", "")
			if w.Code != http.StatusAccepted {
				t.Fatalf("\t%s\tTest %d:\tShould accept the signal, got %d.", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould accept the signal.", success, testID)

			if !waitFor(5*time.Second, func() bool { return st.RetrieveHeight() == 2 }) {
				t.Fatalf("\t%s\tTest %d:\tShould seal a block, height %d.", failed, testID, st.RetrieveHeight())
			}
			if st.QueryMempoolLength() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould drain the pool.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould seal a block.", success, testID)
		}
	}
}

func Test_Events(t *testing.T) {
	mux, st, evts := newMux()

	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Log("Given the need to stream chain events over a websocket.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a block is sealed.", testID)
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/events"

			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould connect to the event stream: %v", failed, testID, err)
			}
			defer conn.Close()
			defer evts.Shutdown()

			if !waitFor(5*time.Second, func() bool { return evts.Count() == 1 }) {
				t.Fatalf("\t%s\tTest %d:\tShould subscribe to events.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould connect to the event stream.", success, testID)

			call(mux, http.MethodPost, "/v1/tx/submit", `{"sender":"A","receiver":"B","amount":10}`)
			call(mux, http.MethodPost, "/v1/block/seal", "")

			conn.SetReadDeadline(time.Now().Add(5 * time.Second))

			var trace, hash bool
			for !hash {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould receive the sealed block events: %v", failed, testID, err)
				}

				s := string(msg)
				if strings.Contains(s, "sealed block[1]") && strings.Contains(s, `receiver_address: "B"`) {
					trace = true
				}
				if strings.Contains(s, "block hash: "+st.LastHeaderHash()) {
					hash = true
				}
			}

			if !trace {
				t.Fatalf("\t%s\tTest %d:\tShould receive the block trace before the hash.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould receive the block trace and the winning hash.", success, testID)
		}
	}
}
