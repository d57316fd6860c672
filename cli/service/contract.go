package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/common/concurrent"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/abi"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/txbuilder"
	"github.com/NilFoundation/energyctl/internal/types"
)

var (
	ErrBusy              = errors.New("another command is executing")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrQueryFailed       = errors.New("query failed")
)

// Dispatch runs one command: it resolves the descriptor and the target contract,
// builds the request, submits it and decodes the result.
// A successful deploy records the new contract address in the registry.
func (s *Service) Dispatch(ctx context.Context, name string) (*Outcome, error) {
	if !s.state.CompareAndSwap(uint32(StateIdle), uint32(StateExecuting)) {
		return nil, ErrBusy
	}
	defer s.state.Store(uint32(StateIdle))

	desc, err := contracts.Lookup(name)
	if err != nil {
		return nil, err
	}

	receiver := types.ZeroAddress
	if desc.Kind != contracts.KindDeploy {
		if receiver, err = s.registry.CurrentAddress(); err != nil {
			return nil, err
		}
	}

	args, payment, err := s.args.Args(desc)
	if err != nil {
		return nil, err
	}

	opts := []txbuilder.Option{txbuilder.WithGasLimit(s.gasLimit)}
	if desc.Kind == contracts.KindDeploy {
		artifact, err := s.code()
		if err != nil {
			return nil, err
		}
		opts = append(opts, txbuilder.WithCode(artifact.Code, s.metadata))
	}

	req, err := txbuilder.Build(desc, s.wallet.Address(), receiver, args, payment, opts...)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With().
		Stringer(logging.FieldEndpoint, desc.Endpoint).
		Stringer(logging.FieldCallKind, desc.Kind).
		Logger()
	logger.Debug().
		Int(logging.FieldArgsCount, len(req.Args)).
		Stringer(logging.FieldContract, receiver).
		Msg("Dispatching command")

	if req.IsQuery() {
		return s.CallContract(ctx, req)
	}

	outcome, err := s.RunContract(ctx, req)
	if err != nil {
		return nil, err
	}
	if outcome.NewAddress != nil {
		s.registry.SetAddress(*outcome.NewAddress)
		logger.Info().Stringer(logging.FieldContract, *outcome.NewAddress).Msg("Contract deployed")
	}
	return outcome, nil
}

// CallContract performs a read-only call to the contract
func (s *Service) CallContract(ctx context.Context, req *txbuilder.Request) (*Outcome, error) {
	caller := req.Sender
	query := &client.Query{
		ScAddress: req.Receiver,
		FuncName:  req.Function,
		Caller:    &caller,
		Args:      req.HexArgs(),
	}
	if !req.NativeValue().IsZero() {
		query.Value = req.NativeValue().String()
	}

	res, err := s.client.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to query contract")
		return nil, err
	}
	if !res.IsOk() {
		return nil, fmt.Errorf("%w: %s: %s", ErrQueryFailed, res.ReturnCode, res.ReturnMessage)
	}

	values, err := decodeResults(req.Descriptor.Result, res.ReturnData)
	if err != nil {
		return nil, err
	}
	return &Outcome{Descriptor: req.Descriptor, Values: values}, nil
}

// RunContract signs and broadcasts the request, waits for it to complete and decodes its result.
func (s *Service) RunContract(ctx context.Context, req *txbuilder.Request) (*Outcome, error) {
	tx, err := s.prepareTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	hash, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to send new transaction")
		return nil, err
	}
	s.logger.Info().
		Str(logging.FieldTxHash, hash).
		Uint64(logging.FieldTxNonce, tx.Nonce).
		Stringer(logging.FieldTxTo, tx.Receiver).
		Msg("Transaction sent")

	result, err := s.WaitForTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Descriptor: req.Descriptor, TxHash: hash}
	if req.Descriptor.Kind == contracts.KindDeploy {
		addr := types.ComputeContractAddress(req.Sender, tx.Nonce)
		if reported, ok := result.DeployedAddress(); ok && !reported.Equal(addr) {
			s.logger.Warn().
				Stringer(logging.FieldContract, reported).
				Msgf("Gateway reported a different contract address than %s", addr)
			addr = reported
		}
		outcome.NewAddress = &addr
		return outcome, nil
	}

	data, ok, err := result.ReturnData()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abi.ErrDecoding, err)
	}
	if !ok && !req.Descriptor.Result.Empty() {
		s.logger.Warn().Str(logging.FieldTxHash, hash).Msg("Transaction produced no return data")
	}
	if outcome.Values, err = decodeResults(req.Descriptor.Result, data); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *Service) prepareTransaction(ctx context.Context, req *txbuilder.Request) (*client.Transaction, error) {
	cfg, err := s.client.GetNetworkConfig(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch network config")
		return nil, err
	}
	account, err := s.client.GetAccount(ctx, req.Sender)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch sender account")
		return nil, err
	}

	data := req.Data()
	tx := &client.Transaction{
		Nonce:    account.Nonce,
		Value:    req.NativeValue().String(),
		Receiver: req.TxReceiver(),
		Sender:   req.Sender,
		GasPrice: max(s.gasPrice, cfg.MinGasPrice),
		GasLimit: cfg.MinGasLimit + cfg.GasPerDataByte*uint64(len(data)) + req.GasLimit,
		Data:     data,
		ChainID:  cfg.ChainID,
		Version:  max(cfg.MinTxVersion, 1),
	}

	signingBytes, err := tx.SigningBytes()
	if err != nil {
		return nil, err
	}
	tx.Signature = hex.EncodeToString(s.wallet.Sign(signingBytes))

	s.logger.Debug().
		Uint64(logging.FieldGasLimit, tx.GasLimit).
		Str(logging.FieldChainId, tx.ChainID).
		Stringer(logging.FieldTxFrom, tx.Sender).
		Msg("Transaction signed")
	return tx, nil
}

// WaitForTransaction polls the transaction status until it is final and fetches the executed transaction.
// A transaction that did not succeed is reported as ErrTransactionFailed.
func (s *Service) WaitForTransaction(ctx context.Context, hash string) (*client.TransactionOnNetwork, error) {
	// The gateway may not know a freshly broadcast transaction yet; status errors only end the wait on timeout.
	var lastErr error
	status, err := concurrent.WaitFor(ctx, s.waitFor, s.waitTick,
		func(ctx context.Context) (client.TxStatus, bool, error) {
			status, err := s.client.GetTransactionStatus(ctx, hash)
			if err != nil {
				lastErr = err
				s.logger.Debug().Err(err).Str(logging.FieldTxHash, hash).Msg("Transaction status is not available yet")
				return "", false, nil
			}
			lastErr = nil
			return status, status.IsFinal(), nil
		})
	if err != nil && lastErr != nil && errors.Is(err, concurrent.ErrWaitTimeout) {
		err = fmt.Errorf("%w: %w", err, lastErr)
	}
	if err != nil {
		s.logger.Error().Err(err).Str(logging.FieldTxHash, hash).Msg("Failed to wait for transaction")
		return nil, err
	}
	s.logger.Debug().Str(logging.FieldTxHash, hash).Str(logging.FieldTxStatus, string(status)).Send()

	tx, err := s.client.GetTransaction(ctx, hash, true)
	if err != nil {
		return nil, err
	}
	if !status.IsSuccessful() {
		reason := tx.ErrorMessage()
		if reason == "" {
			reason = string(status)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrTransactionFailed, hash, reason)
	}
	return tx, nil
}

func decodeResults(shape contracts.ResultShape, data [][]byte) ([]abi.Value, error) {
	if shape.Empty() {
		return nil, nil
	}
	if !shape.Multi {
		if len(data) > 1 {
			return nil, fmt.Errorf("%w: expected one %s, got %d values", abi.ErrDecoding, shape.Type, len(data))
		}
		var raw []byte
		if len(data) == 1 {
			raw = data[0]
		}
		v, err := abi.DecodeTop(shape.Type, raw)
		if err != nil {
			return nil, err
		}
		return []abi.Value{v}, nil
	}

	values := make([]abi.Value, 0, len(data))
	for i, raw := range data {
		v, err := abi.DecodeTop(shape.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}
