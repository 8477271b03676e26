// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	jsoniter "github.com/json-iterator/go"
	"io"
	"reflect"
	"unsafe"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// rawMessage defers decoding data until its type is known, whatever the field order.
type rawMessage struct {
	Type messageType         `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

func decodeMessage(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var raw rawMessage
	iter.ReadVal(&raw)
	if iter.Error != nil {
		return
	}
	if raw.Type == "" {
		iter.ReportError("decodeMessage", "no inbound message type")
		return
	}

	message := (*Message)(ptr)

	inboundType, ok := inboundMessageTypes[raw.Type]
	if !ok {
		message.Data = InvalidInbound{messageType: raw.Type}
		return
	}

	in := reflect.New(inboundType)
	if len(raw.Data) > 0 {
		// Borrow from the same pool so the config matches
		pool := iter.Pool()
		dataIter := pool.BorrowIterator(raw.Data)
		defer pool.ReturnIterator(dataIter)

		dataIter.ReadVal(in.Interface())
		if err := dataIter.Error; err != nil && err != io.EOF {
			iter.ReportError("decodeMessage", string(raw.Type)+": "+err.Error())
			return
		}
	}
	message.Data = in.Elem().Interface()
}
