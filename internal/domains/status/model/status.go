package model

import (
	"strings"
)

// Code is the canonical booking status. Raw statuses persisted on bookings may be a code, a display
// name or an alias; Normalizer turns all of them into a Code.
type Code string

const (
	CodePending            Code = "pending"
	CodeConfirmed          Code = "confirmed"
	CodeBeauticianAssigned Code = "beautician_assigned"
	CodeOnTheWay           Code = "on_the_way"
	CodeServiceStarted     Code = "service_started"
	CodeDone               Code = "done"
	CodeCancelled          Code = "cancelled"
)

const (
	BadgeWarning   = "warning"
	BadgeInfo      = "info"
	BadgePrimary   = "primary"
	BadgeSecondary = "secondary"
	BadgeSuccess   = "success"
	BadgeDanger    = "danger"
	BadgeNeutral   = "neutral"
)

var builtinOptions = []StatusOption{
	{StatusCode: string(CodePending), StatusName: "Pending", Active: true},
	{StatusCode: string(CodeConfirmed), StatusName: "Confirmed", Active: true},
	{StatusCode: string(CodeBeauticianAssigned), StatusName: "Beautician Assigned", Active: true},
	{StatusCode: string(CodeOnTheWay), StatusName: "On The Way", Active: true},
	{StatusCode: string(CodeServiceStarted), StatusName: "Service Started", Active: true},
	{StatusCode: string(CodeDone), StatusName: "Done", Active: true},
	{StatusCode: string(CodeCancelled), StatusName: "Cancelled", Active: true},
}

var aliases = map[string]Code{
	"start":     CodeServiceStarted,
	"started":   CodeServiceStarted,
	"completed": CodeDone,
	"complete":  CodeDone,
	"canceled":  CodeCancelled,
	"assigned":  CodeBeauticianAssigned,
}

var badges = map[Code]string{
	CodePending:            BadgeWarning,
	CodeConfirmed:          BadgeInfo,
	CodeBeauticianAssigned: BadgePrimary,
	CodeOnTheWay:           BadgePrimary,
	CodeServiceStarted:     BadgeSecondary,
	CodeDone:               BadgeSuccess,
	CodeCancelled:          BadgeDanger,
}

// Normalizer translates between status codes and names. It is built once from the status table
// and is safe for concurrent reads. A nil Normalizer knows only the built-in vocabulary.
type Normalizer struct {
	options []StatusOption
	byKey   map[string]Code
	byCode  map[Code]StatusOption
}

func NewNormalizer(options []StatusOption) *Normalizer {
	n := &Normalizer{
		byKey:  make(map[string]Code, len(aliases)+2*len(builtinOptions)),
		byCode: make(map[Code]StatusOption, len(builtinOptions)),
	}

	for alias, code := range aliases {
		n.byKey[alias] = code
	}

	all := append(append([]StatusOption{}, builtinOptions...), options...)

	n.registerCodes(all)
	n.registerNames(all)

	n.options = make([]StatusOption, 0, len(n.byCode))

	seen := make(map[Code]bool, len(n.byCode))
	for _, opt := range all {
		code := Code(key(opt.StatusCode))
		if seen[code] {
			continue
		}

		seen[code] = true

		n.options = append(n.options, n.byCode[code])
	}

	return n
}

func (n *Normalizer) registerCodes(options []StatusOption) {
	for _, opt := range options {
		code := Code(key(opt.StatusCode))
		if code == "" {
			continue
		}

		opt.StatusCode = string(code)
		n.byCode[code] = opt
		n.byKey[string(code)] = code
	}
}

// registerNames maps display names onto codes. A name never shadows a code, so a custom status
// named like an existing code cannot capture that code's bookings.
func (n *Normalizer) registerNames(options []StatusOption) {
	for _, opt := range options {
		code := Code(key(opt.StatusCode))
		if code == "" {
			continue
		}

		name := key(opt.StatusName)
		if name == "" {
			continue
		}

		if _, isCode := n.byCode[Code(name)]; isCode && Code(name) != code {
			continue
		}

		n.byKey[name] = code
	}
}

var defaultNormalizer = NewNormalizer(nil)

func (n *Normalizer) self() *Normalizer {
	if n == nil {
		return defaultNormalizer
	}

	return n
}

// Normalize maps a raw status to its canonical code. Unknown values come back as their
// lower-cased, trimmed literal so they still compare equal to themselves.
func (n *Normalizer) Normalize(raw string) Code {
	n = n.self()

	k := key(raw)
	if code, ok := n.byKey[k]; ok {
		return code
	}

	return Code(strings.ToLower(strings.TrimSpace(raw)))
}

// Equal reports whether two raw statuses denote the same canonical status.
func (n *Normalizer) Equal(a, b string) bool {
	return n.Normalize(a) == n.Normalize(b)
}

// Known reports whether raw resolves to an entry of the status table.
func (n *Normalizer) Known(raw string) bool {
	_, ok := n.self().byCode[n.Normalize(raw)]

	return ok
}

// Label returns the display name for raw, or raw itself when it is not in the table.
func (n *Normalizer) Label(raw string) string {
	if opt, ok := n.self().byCode[n.Normalize(raw)]; ok && opt.StatusName != "" {
		return opt.StatusName
	}

	return raw
}

// Badge returns the badge tone for raw; unknown statuses get the neutral tone.
func (n *Normalizer) Badge(raw string) string {
	if tone, ok := badges[n.Normalize(raw)]; ok {
		return tone
	}

	return BadgeNeutral
}

// Options lists the active statuses, built-in ones first, in table order.
func (n *Normalizer) Options() []StatusOption {
	n = n.self()

	res := make([]StatusOption, 0, len(n.options))
	for _, opt := range n.options {
		if opt.Active {
			res = append(res, opt)
		}
	}

	return res
}

var separators = strings.NewReplacer(" ", "_", "-", "_")

func key(raw string) string {
	return separators.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// CodeOf returns the storage spelling of a new status code.
func CodeOf(raw string) Code {
	return Code(key(raw))
}
