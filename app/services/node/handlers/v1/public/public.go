// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/sealchain/business/sys/validate"
	"github.com/ardanlabs/sealchain/business/web/errs"
	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
	"github.com/ardanlabs/sealchain/foundation/blockchain/state"
	"github.com/ardanlabs/sealchain/foundation/events"
	"github.com/ardanlabs/sealchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	id, ch := h.Evts.Subscribe()
	defer h.Evts.Unsubscribe(id)

	h.Log.Infow("events", "traceid", web.GetTraceID(ctx), "status", "subscribed", "id", id)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(tx); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.Log.Infow("submit tran", "traceid", web.GetTraceID(ctx), "sender", tx.Sender, "receiver", tx.Receiver, "amount", tx.Amount)
	h.State.SubmitTransaction(tx.Sender, tx.Receiver, tx.Amount)

	resp := submitted{
		Status:  "transaction added to mempool",
		Pending: h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// SealBlock seals the pending transactions into a new block. The request
// blocks until the POW puzzle is solved or the request is cancelled.
func (h Handlers) SealBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.State.MineNewBlock(ctx)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("sealing block: %w", err), http.StatusServiceUnavailable)
	}

	num, _ := h.State.QueryBlockNumber(h.State.HashBlock(blk))

	return web.Respond(ctx, w, toBlock(h.State, num, blk), http.StatusOK)
}

// SignalMining asks the background worker to seal the pending transactions.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := updated{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Blocks returns all the blocks and their details.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks := h.State.RetrieveBlocks()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(h.State, uint64(i), blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// BlockByNumber returns the block at the specified number.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "num"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	blk, err := h.State.RetrieveBlock(num)
	if err != nil {
		if errors.Is(err, database.ErrBlockNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("retrieve block[%d]: %w", num, err)
	}

	return web.Respond(ctx, w, toBlock(h.State, num, blk), http.StatusOK)
}

// Status returns the current state of the chain.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := status{
		LastHash:   h.State.LastHeaderHash(),
		Height:     h.State.RetrieveHeight(),
		Pending:    h.State.QueryMempoolLength(),
		Difficulty: h.State.RetrieveDifficulty(),
		Reward:     h.State.RetrieveReward(),
		Miner:      h.State.RetrieveMinerAddress(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Validate checks the integrity of the whole chain.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validation{
		Valid: true,
	}

	if err := h.State.ValidateChain(); err != nil {
		resp = validation{
			Error: err.Error(),
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SetDifficulty replaces the difficulty used for the next block.
func (h Handlers) SetDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var d difficulty
	if err := web.Decode(r, &d); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(d); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.State.SetDifficulty(*d.Difficulty)

	resp := updated{
		Status: fmt.Sprintf("difficulty set to %d", *d.Difficulty),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SetReward replaces the reward paid for the next block.
func (h Handlers) SetReward(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var rw reward
	if err := web.Decode(r, &rw); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(rw); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.State.SetReward(*rw.Reward)

	resp := updated{
		Status: fmt.Sprintf("reward set to %v", *rw.Reward),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
