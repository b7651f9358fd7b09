package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidArguments is returned when raw arguments do not fit the command's input.
var ErrInvalidArguments = errors.New("invalid command arguments")

// Parse decodes raw JSON arguments for kind into a Command. Empty input is
// treated as an empty object.
func Parse(kind Kind, raw json.RawMessage) (Command, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}

	switch kind {
	case KindAddItem, KindRemoveItem:
		var in ItemInput
		if err := decodeStrict(raw, &in); err != nil {
			return nil, err
		}
		if kind == KindAddItem {
			return AddItem{Item: in.Item}, nil
		}
		return RemoveItem{Item: in.Item}, nil
	case KindDeposit, KindWithdraw:
		var in StockInput
		if err := decodeStrict(raw, &in); err != nil {
			return nil, err
		}
		if kind == KindDeposit {
			return Deposit{Item: in.Item, Quantity: in.Quantity}, nil
		}
		return Withdraw{Item: in.Item, Quantity: in.Quantity}, nil
	case KindListInventory:
		if err := decodeStrict(raw, &NoInput{}); err != nil {
			return nil, err
		}
		return ListInventory{}, nil
	case KindHelp:
		if err := decodeStrict(raw, &NoInput{}); err != nil {
			return nil, err
		}
		return Help{}, nil
	}
	return nil, fmt.Errorf("%w: unknown command kind %d", ErrInvalidArguments, int(kind))
}

func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
