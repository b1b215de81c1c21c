// Package tokenbridge drives the asset transfers across the bridge: inbound messages
// are consumed and minted, burns and withdrawals debit the caller and send an
// outgoing message.
package tokenbridge

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/0xPolygon/msgbridge/bridgestate"
	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/0xPolygon/msgbridge/messaging"
	"github.com/ethereum/go-ethereum/common"
)

// mint payload layout: [recipient, amount]
const mintPayloadLen = 2

// Bridge is the token bridge state machine. No lock is held across remote calls:
// the mint status ledger and the per caller in flight flags fence the operations
// that span them. The state is checkpointed before every remote call whose side
// effect can not be undone.
type Bridge struct {
	logger       *log.Logger
	cfg          Config
	state        *bridgestate.BridgeState
	messenger    Messenger
	ledger       TokenLedger
	balances     Balances
	checkpointer Checkpointer

	mu sync.Mutex
	// inFlight are the accounts with a burn, withdrawal or retry running
	inFlight map[common.Address]struct{}
	// minting are the messages whose local mint is running
	minting map[message.Fingerprint]struct{}
}

func New(
	logger *log.Logger,
	cfg Config,
	state *bridgestate.BridgeState,
	messenger Messenger,
	tokenLedger TokenLedger,
	balances Balances,
	checkpointer Checkpointer,
) *Bridge {
	return &Bridge{
		logger:       logger,
		cfg:          cfg,
		state:        state,
		messenger:    messenger,
		ledger:       tokenLedger,
		balances:     balances,
		checkpointer: checkpointer,
		inFlight:     make(map[common.Address]struct{}),
		minting:      make(map[message.Fingerprint]struct{}),
	}
}

// checkpoint saves the state, it does nothing if there is no checkpointer
func (b *Bridge) checkpoint(ctx context.Context) error {
	if b.checkpointer == nil {
		return nil
	}
	return b.checkpointer.Checkpoint(ctx)
}

func (b *Bridge) localID() *big.Int {
	return message.AddressToWord(b.cfg.LocalAddress)
}

func (b *Bridge) inboundFingerprint(nonce *big.Int, payload []*big.Int) (message.Fingerprint, error) {
	return message.InboundFingerprint(message.AddressToWord(b.cfg.L1TokenBridge), b.localID(), nonce, payload)
}

func decodeMintPayload(payload []*big.Int) (common.Address, *big.Int, error) {
	if len(payload) != mintPayloadLen {
		return common.Address{}, nil, fmt.Errorf("%w: expected %d items, got %d", ErrInvalidPayload, mintPayloadLen, len(payload))
	}
	recipient, err := message.WordToAddress(payload[0])
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("%w: recipient: %w", ErrInvalidPayload, err)
	}
	amount := payload[1]
	if amount == nil || amount.Sign() <= 0 {
		return common.Address{}, nil, fmt.Errorf("%w: %w", ErrInvalidPayload, ErrInvalidAmount)
	}
	return recipient, amount, nil
}

// Mint consumes the inbound message sent by the L1 token bridge and mints the
// amount to the recipient. If the mint fails after the message was consumed the
// message stays as consumed not minted and calling Mint again only retries the mint.
// If the consume call fails without a rejection the message stays consuming, it is
// never consumed again blindly: a controller settles it with ResolveMintStatus.
func (b *Bridge) Mint(ctx context.Context, nonce *big.Int, payload []*big.Int) error {
	recipient, amount, err := decodeMintPayload(payload)
	if err != nil {
		return err
	}
	fp, err := b.inboundFingerprint(nonce, payload)
	if err != nil {
		return err
	}

	var consumed bool
	err = b.state.Update(func(l *bridgestate.Ledgers) error {
		status, ok := l.MintStatuses.Get(fp)
		if ok && status != ledger.MintStatusConsumedNotMinted {
			return fmt.Errorf("%w: message %s is %s", ErrMessageInProgress, fp.Hex(), status)
		}
		if !b.startMinting(fp) {
			return fmt.Errorf("%w: message %s is being minted", ErrMessageInProgress, fp.Hex())
		}
		consumed = ok
		if !ok {
			l.MintStatuses.Set(fp, ledger.MintStatusConsuming)
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer b.stopMinting(fp)

	if !consumed {
		if err := b.consume(ctx, fp, nonce, payload); err != nil {
			return err
		}
	}

	if err := b.ledger.Mint(ctx, recipient, amount); err != nil {
		b.setMintStatus(ctx, fp, ledger.MintStatusConsumedNotMinted)
		b.logger.Warnf("message %s consumed but mint of %s to %s failed: %v", fp.Hex(), amount, recipient.Hex(), err)
		return &RemoteCallError{Op: "mint", Err: err}
	}
	b.removeMintStatus(ctx, fp)
	b.logger.Infof("minted %s to %s for message %s", amount, recipient.Hex(), fp.Hex())
	return nil
}

// consume runs the consume call of a message already marked as consuming. On
// success the consumption is saved before returning so the mint can not be lost.
func (b *Bridge) consume(ctx context.Context, fp message.Fingerprint, nonce *big.Int, payload []*big.Int) error {
	if err := b.checkpoint(ctx); err != nil {
		b.removeMintStatus(ctx, fp)
		return fmt.Errorf("error saving state before consuming message %s: %w", fp.Hex(), err)
	}

	ok, err := b.messenger.ConsumeMessage(ctx, b.localID(), message.AddressToWord(b.cfg.L1TokenBridge), nonce, payload)
	switch {
	case err == nil && ok:
	case err == nil:
		b.removeMintStatus(ctx, fp)
		return &RemoteCallError{Op: "consume message", Err: ErrNotConsumed}
	case isConsumeRejection(err):
		b.removeMintStatus(ctx, fp)
		return &RemoteCallError{Op: "consume message", Err: err}
	default:
		b.logger.Errorf("consume of message %s with nonce %s failed, it stays %s until resolved: %v",
			fp.Hex(), nonce, ledger.MintStatusConsuming, err)
		return &RemoteCallError{Op: "consume message", Err: fmt.Errorf("%w: %w", ErrConsumeOutcomeUnknown, err)}
	}

	if err := b.checkpoint(ctx); err != nil {
		// the next periodic save keeps the consumption, the mint waits for a retry
		_ = b.state.Update(func(l *bridgestate.Ledgers) error {
			l.MintStatuses.Set(fp, ledger.MintStatusConsumedNotMinted)
			return nil
		})
		b.logger.Errorf("message %s consumed but the state could not be saved, mint postponed: %v", fp.Hex(), err)
		return fmt.Errorf("error saving state after consuming message %s: %w", fp.Hex(), err)
	}
	return nil
}

// isConsumeRejection reports whether the consume call was answered with a
// rejection, meaning nothing was consumed
func isConsumeRejection(err error) bool {
	return errors.Is(err, messaging.ErrAlreadyConsumed) ||
		errors.Is(err, messaging.ErrInvalidMessage) ||
		errors.Is(err, messaging.ErrInconsistentState) ||
		errors.Is(err, message.ErrFieldOverflow) ||
		errors.Is(err, message.ErrNegativeField) ||
		errors.Is(err, message.ErrNilField)
}

// ResolveMintStatus settles a message left consuming, by a consume call whose
// outcome is unknown or by a restart in the middle of a mint. If the nonce was
// consumed the message moves to consumed not minted and the next Mint only mints,
// otherwise the status is dropped and the message can be minted from scratch.
// It returns the new status, nil if dropped.
func (b *Bridge) ResolveMintStatus(
	ctx context.Context, caller common.Address, nonce *big.Int, payload []*big.Int,
) (*ledger.MintStatus, error) {
	if err := b.state.CheckController(caller); err != nil {
		return nil, err
	}
	fp, err := b.inboundFingerprint(nonce, payload)
	if err != nil {
		return nil, err
	}
	if !b.startMinting(fp) {
		return nil, fmt.Errorf("%w: message %s is being minted", ErrMessageInProgress, fp.Hex())
	}
	defer b.stopMinting(fp)

	status, err := b.GetMessageStatus(nonce, payload)
	if err != nil {
		return nil, err
	}
	if status == nil || *status != ledger.MintStatusConsuming {
		return status, fmt.Errorf("%w: message %s", ErrNothingToResolve, fp.Hex())
	}

	exists, err := b.messenger.NonceExists(nonce)
	if err != nil {
		return nil, &RemoteCallError{Op: "nonce exists", Err: err}
	}
	// fp is held, no mint can change the status meanwhile
	if !exists {
		b.removeMintStatus(ctx, fp)
		b.logger.Warnf("message %s was not consumed, status dropped by %s", fp.Hex(), caller.Hex())
		return nil, nil
	}
	b.setMintStatus(ctx, fp, ledger.MintStatusConsumedNotMinted)
	b.logger.Warnf("message %s was consumed, moved to %s by %s", fp.Hex(), ledger.MintStatusConsumedNotMinted, caller.Hex())
	resolved := ledger.MintStatusConsumedNotMinted
	return &resolved, nil
}

func (b *Bridge) setMintStatus(ctx context.Context, fp message.Fingerprint, status ledger.MintStatus) {
	_ = b.state.Update(func(l *bridgestate.Ledgers) error {
		l.MintStatuses.Set(fp, status)
		return nil
	})
	if err := b.checkpoint(ctx); err != nil {
		b.logger.Errorf("error saving state after setting message %s as %s: %v", fp.Hex(), status, err)
	}
}

func (b *Bridge) removeMintStatus(ctx context.Context, fp message.Fingerprint) {
	_ = b.state.Update(func(l *bridgestate.Ledgers) error {
		l.MintStatuses.Remove(fp)
		return nil
	})
	if err := b.checkpoint(ctx); err != nil {
		b.logger.Errorf("error saving state after removing the status of message %s: %v", fp.Hex(), err)
	}
}

func (b *Bridge) startMinting(fp message.Fingerprint) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.minting[fp]; ok {
		return false
	}
	b.minting[fp] = struct{}{}
	return true
}

func (b *Bridge) stopMinting(fp message.Fingerprint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.minting, fp)
}

// GetMessageStatus returns the mint status of an inbound message, nil if the message
// is not being minted
func (b *Bridge) GetMessageStatus(nonce *big.Int, payload []*big.Int) (*ledger.MintStatus, error) {
	fp, err := b.inboundFingerprint(nonce, payload)
	if err != nil {
		return nil, err
	}
	var res *ledger.MintStatus
	_ = b.state.View(func(l *bridgestate.Ledgers) error {
		if status, ok := l.MintStatuses.Get(fp); ok {
			res = &status
		}
		return nil
	})
	return res, nil
}

// Burn debits the caller, burns the amount on the token ledger and sends the burn
// message to the L1 token bridge. A failed burn gives the funds back. A failed send
// keeps the debit, the burn already happened, and moves the amount to claimable.
func (b *Bridge) Burn(ctx context.Context, caller, beneficiary common.Address, amount *big.Int) (message.Key, error) {
	return b.sendFunds(ctx, caller, beneficiary, amount, true)
}

// Withdraw debits the caller and sends the withdrawal message to the L1 native
// bridge. A failed send keeps the debit and moves the amount to claimable.
func (b *Bridge) Withdraw(ctx context.Context, caller, beneficiary common.Address, amount *big.Int) (message.Key, error) {
	return b.sendFunds(ctx, caller, beneficiary, amount, false)
}

func (b *Bridge) sendFunds(
	ctx context.Context, caller, beneficiary common.Address, amount *big.Int, burn bool,
) (message.Key, error) {
	if amount == nil || amount.Sign() <= 0 {
		return message.Key{}, ErrInvalidAmount
	}
	if err := b.lock(caller); err != nil {
		return message.Key{}, err
	}
	defer b.unlock(caller)

	if err := b.balances.Debit(caller, amount); err != nil {
		return message.Key{}, err
	}

	receiver, token := b.cfg.L1NativeBridge, b.cfg.NativeToken
	if burn {
		receiver, token = b.cfg.L1TokenBridge, b.cfg.Token
		if err := b.ledger.Burn(ctx, caller, amount); err != nil {
			if errCredit := b.balances.Credit(caller, amount); errCredit != nil {
				b.logger.Errorf("error giving back %s to %s after a failed burn: %v", amount, caller.Hex(), errCredit)
			}
			return message.Key{}, &RemoteCallError{Op: "burn", Err: err}
		}
	}

	payload := []*big.Int{message.AddressToWord(beneficiary), new(big.Int).Set(amount)}
	key, err := b.messenger.SendMessage(ctx, b.localID(), message.AddressToWord(receiver), payload)
	if err != nil {
		return message.Key{}, b.moveToClaimable(ctx, beneficiary, token, receiver, payload, amount, err)
	}
	if err := b.checkpoint(ctx); err != nil {
		b.logger.Errorf("error saving state after sending message %s: %v", key.Hex(), err)
	}
	b.logger.Infof("sent %s from %s to %s, message key %s", amount, caller.Hex(), beneficiary.Hex(), key.Hex())
	return key, nil
}

func (b *Bridge) moveToClaimable(
	ctx context.Context, beneficiary, token, receiver common.Address, payload []*big.Int, amount *big.Int, sendErr error,
) error {
	fp, err := message.OutboundFingerprint(b.localID(), message.AddressToWord(receiver), payload)
	if err != nil {
		return fmt.Errorf("error computing fingerprint of unsent message: %w", err)
	}
	var entry ledger.ClaimableEntry
	err = b.state.Update(func(l *bridgestate.Ledgers) error {
		entry, err = l.Claimable.Add(beneficiary, token, fp, amount)
		return err
	})
	if err != nil {
		b.logger.Errorf("error registering claimable of %s for %s: %v", amount, beneficiary.Hex(), err)
		return fmt.Errorf("error registering claimable after %w: %w", sendErr, err)
	}
	if err := b.checkpoint(ctx); err != nil {
		b.logger.Errorf("error saving state after registering claimable of %s for %s: %v", amount, beneficiary.Hex(), err)
	}
	b.logger.Warnf("send failed, claimable registered: %s. Error: %v", entry, sendErr)
	return fmt.Errorf("%w: %w", ErrMovedToClaimable, &RemoteCallError{Op: "send message", Err: sendErr})
}

// ClaimableGetAll returns the claimable entries of the beneficiary
func (b *Bridge) ClaimableGetAll(beneficiary common.Address) []ledger.ClaimableEntry {
	var res []ledger.ClaimableEntry
	_ = b.state.View(func(l *bridgestate.Ledgers) error {
		res = l.Claimable.List(beneficiary)
		return nil
	})
	return res
}

// RemoveClaimable takes one repetition of the entry out once it has been claimed
func (b *Bridge) RemoveClaimable(caller, beneficiary common.Address, fp message.Fingerprint) (uint64, error) {
	if err := b.state.CheckController(caller); err != nil {
		return 0, err
	}
	var left uint64
	err := b.state.Update(func(l *bridgestate.Ledgers) (err error) {
		left, err = l.Claimable.Remove(beneficiary, fp)
		return err
	})
	if err != nil {
		return 0, err
	}
	b.logger.Infof("claimable %s of %s removed by %s, %d left", fp.Hex(), beneficiary.Hex(), caller.Hex(), left)
	return left, nil
}

// RemoveClaimableByAmount is RemoveClaimable for callers that only know the amount
func (b *Bridge) RemoveClaimableByAmount(
	caller, beneficiary common.Address, amount *big.Int,
) (ledger.ClaimableEntry, error) {
	if err := b.state.CheckController(caller); err != nil {
		return ledger.ClaimableEntry{}, err
	}
	var removed ledger.ClaimableEntry
	err := b.state.Update(func(l *bridgestate.Ledgers) (err error) {
		removed, err = l.Claimable.RemoveByAmount(beneficiary, amount)
		return err
	})
	if err != nil {
		return ledger.ClaimableEntry{}, err
	}
	b.logger.Infof("claimable %s of %s removed by %s", removed.Fingerprint.Hex(), beneficiary.Hex(), caller.Hex())
	return removed, nil
}

// RetryClaimable sends again the message of one repetition of a claimable entry.
// The repetition is removed once the message is stored.
func (b *Bridge) RetryClaimable(
	ctx context.Context, caller, beneficiary common.Address, fp message.Fingerprint,
) (message.Key, error) {
	if err := b.state.CheckController(caller); err != nil {
		return message.Key{}, err
	}
	// the fence is on the beneficiary so two controllers can not retry the same entries
	if err := b.lock(beneficiary); err != nil {
		return message.Key{}, err
	}
	defer b.unlock(beneficiary)

	var (
		entry ledger.ClaimableEntry
		found bool
	)
	_ = b.state.View(func(l *bridgestate.Ledgers) error {
		entry, found = l.Claimable.Get(beneficiary, fp)
		return nil
	})
	if !found {
		return message.Key{}, fmt.Errorf("claimable of %s for message %s: %w", beneficiary.Hex(), fp.Hex(), ledger.ErrNotFound)
	}
	var receiver common.Address
	switch entry.Token {
	case b.cfg.Token:
		receiver = b.cfg.L1TokenBridge
	case b.cfg.NativeToken:
		receiver = b.cfg.L1NativeBridge
	default:
		return message.Key{}, fmt.Errorf("%w: %s", ErrUnknownToken, entry.Token.Hex())
	}
	payload := []*big.Int{message.AddressToWord(beneficiary), entry.Amount}

	key, err := b.messenger.SendMessage(ctx, b.localID(), message.AddressToWord(receiver), payload)
	if err != nil {
		return message.Key{}, &RemoteCallError{Op: "send message", Err: err}
	}
	err = b.state.Update(func(l *bridgestate.Ledgers) error {
		_, err := l.Claimable.Remove(beneficiary, fp)
		return err
	})
	if err != nil {
		// removed meanwhile by a controller, the message has been sent anyway
		b.logger.Warnf("claimable %s of %s sent with key %s but could not be removed: %v",
			fp.Hex(), beneficiary.Hex(), key.Hex(), err)
	}
	if err := b.checkpoint(ctx); err != nil {
		b.logger.Errorf("error saving state after retrying claimable %s: %v", fp.Hex(), err)
	}
	b.logger.Infof("claimable %s of %s sent with key %s", fp.Hex(), beneficiary.Hex(), key.Hex())
	return key, nil
}

// ClearInFlight releases the in flight flag of the account. It is the way out for an
// operation stuck on a remote call that never returned.
func (b *Bridge) ClearInFlight(caller, account common.Address) (bool, error) {
	if err := b.state.CheckController(caller); err != nil {
		return false, err
	}
	b.mu.Lock()
	_, ok := b.inFlight[account]
	delete(b.inFlight, account)
	b.mu.Unlock()
	if ok {
		b.logger.Warnf("in flight flag of %s cleared by %s", account.Hex(), caller.Hex())
	}
	return ok, nil
}

// IsInFlight reports whether the account has an operation running
func (b *Bridge) IsInFlight(account common.Address) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inFlight[account]
	return ok
}

func (b *Bridge) lock(account common.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.inFlight[account]; ok {
		return fmt.Errorf("%w: %s", ErrOperationInProgress, account.Hex())
	}
	b.inFlight[account] = struct{}{}
	return nil
}

func (b *Bridge) unlock(account common.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, account)
}
