package store

import (
	"encoding/json" // Record encoding
	"fmt"           // Error formatting

	"event_marketplace/internal/domain" // Importing domain models
)

// sequenced is the record layout of a table that owns an id sequence
type sequenced[T any] struct {
	Rows []T    `json:"rows"` // Table rows
	Seq  uint64 `json:"seq"`  // Last issued id
}

func encodeSequenced[T any](rows []T, seq uint64) ([]byte, error) {
	if rows == nil {
		rows = []T{} // Store [] rather than null
	}
	return json.Marshal(sequenced[T]{Rows: rows, Seq: seq})
}

func decodeSequenced[T any](payload []byte, rows *[]T, seq *uint64) error {
	var rec sequenced[T]
	if err := json.Unmarshal(payload, &rec); err != nil {
		return err
	}
	*rows, *seq = rec.Rows, rec.Seq // Sequence survives restarts
	return nil
}

func decodeMap[V any](payload []byte, dst *map[string]V) error {
	m := map[string]V{} // Never leave a nil map behind
	if err := json.Unmarshal(payload, &m); err != nil {
		return err
	}
	*dst = m
	return nil
}

// encode serialises one table of the state
func (st *State) encode(t Table) ([]byte, error) {
	switch t {
	case TableAdmins:
		return json.Marshal(st.Admins)
	case TableVendors:
		return json.Marshal(st.Vendors)
	case TableUsers:
		return json.Marshal(st.Users)
	case TableCarts:
		return json.Marshal(st.Carts)
	case TableProducts:
		return encodeSequenced(st.Products, st.ProductSeq)
	case TableOrders:
		return encodeSequenced(st.Orders, st.OrderSeq)
	case TableAdminNotifications:
		return encodeSequenced(st.AdminNotifications, st.AdminNotificationSeq)
	case TableVendorNotifications:
		return encodeSequenced(st.VendorNotifications, st.VendorNotificationSeq)
	case TableMemberships:
		return encodeSequenced(st.Memberships, st.MembershipSeq)
	case TableGuests:
		return encodeSequenced(st.Guests, st.GuestSeq)
	case TableRequests:
		return encodeSequenced(st.Requests, st.RequestSeq)
	}
	return nil, fmt.Errorf("unknown table %q", t)
}

// decode replaces one table of the state
func (st *State) decode(t Table, payload []byte) error {
	switch t {
	case TableAdmins:
		return decodeMap[domain.Account](payload, &st.Admins)
	case TableVendors:
		return decodeMap[domain.Account](payload, &st.Vendors)
	case TableUsers:
		return decodeMap[domain.Account](payload, &st.Users)
	case TableCarts:
		return decodeMap[domain.Cart](payload, &st.Carts)
	case TableProducts:
		return decodeSequenced(payload, &st.Products, &st.ProductSeq)
	case TableOrders:
		return decodeSequenced(payload, &st.Orders, &st.OrderSeq)
	case TableAdminNotifications:
		return decodeSequenced(payload, &st.AdminNotifications, &st.AdminNotificationSeq)
	case TableVendorNotifications:
		return decodeSequenced(payload, &st.VendorNotifications, &st.VendorNotificationSeq)
	case TableMemberships:
		return decodeSequenced(payload, &st.Memberships, &st.MembershipSeq)
	case TableGuests:
		return decodeSequenced(payload, &st.Guests, &st.GuestSeq)
	case TableRequests:
		return decodeSequenced(payload, &st.Requests, &st.RequestSeq)
	}
	return fmt.Errorf("unknown table %q", t)
}
