package session

import (
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/model"
)

// initAnimCommandHandlers initializes animation command handlers
func initAnimCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleAnimAdd,
		"update": handleAnimUpdate,
		"remove": handleAnimRemove,
		"list":   handleAnimList,
	}
}

// initActionCommandHandlers initializes action command handlers
func initActionCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleActionAdd,
		"update": handleActionUpdate,
		"remove": handleActionRemove,
		"list":   handleActionList,
	}
}

var animationTypes = map[model.AnimationType]bool{
	model.AnimationFade:   true,
	model.AnimationSlide:  true,
	model.AnimationScale:  true,
	model.AnimationRotate: true,
	model.AnimationCustom: true,
}

// parseAnimation reads <type> <duration> [delay] [easing] [direction].
func parseAnimation(args []string) (model.Animation, error) {
	var a model.Animation
	a.Type = model.AnimationType(strings.ToLower(args[0]))
	if !animationTypes[a.Type] {
		return a, fmt.Errorf("unknown animation type %q", args[0])
	}
	var err error
	if a.Duration, err = parseFloat("duration", args[1]); err != nil {
		return a, err
	}
	if len(args) > 2 {
		if a.Delay, err = parseFloat("delay", args[2]); err != nil {
			return a, err
		}
	}
	if len(args) > 3 {
		a.Easing = args[3]
	}
	if len(args) > 4 {
		a.Direction = args[4]
	}
	return a, nil
}

func handleAnimAdd(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	anim, err := parseAnimation(cmd.Args[1:])
	if err != nil {
		return nil, err
	}
	s.Store.AddAnimation(id, anim)
	s.Store.CommitHistory()
	return nil, nil
}

func handleAnimUpdate(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	index, err := parseInt("index", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	anim, err := parseAnimation(cmd.Args[2:])
	if err != nil {
		return nil, err
	}
	if e, _ := s.Store.Element(id); index < 0 || index >= len(e.Animations) {
		return fmt.Sprintf("%s has no animation %d", id, index), nil
	}
	s.Store.UpdateAnimation(id, index, anim)
	s.Store.CommitHistory()
	return nil, nil
}

func handleAnimRemove(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	index, err := parseInt("index", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if e, _ := s.Store.Element(id); index < 0 || index >= len(e.Animations) {
		return fmt.Sprintf("%s has no animation %d", id, index), nil
	}
	s.Store.RemoveAnimation(id, index)
	s.Store.CommitHistory()
	return nil, nil
}

func handleAnimList(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	e, _ := s.Store.Element(id)
	if len(e.Animations) == 0 {
		return "No animations", nil
	}
	lines := make([]string, len(e.Animations))
	for i, a := range e.Animations {
		lines[i] = fmt.Sprintf("%d: %s %sms delay %sms %s %s", i, a.Type, num(a.Duration), num(a.Delay), a.Easing, a.Direction)
	}
	return strings.Join(lines, "\n"), nil
}

var actionTypes = map[model.ActionType]bool{
	model.ActionLink:   true,
	model.ActionScroll: true,
	model.ActionToggle: true,
	model.ActionModal:  true,
	model.ActionAPI:    true,
	model.ActionCustom: true,
}

var actionEvents = map[model.ActionEvent]bool{
	model.EventClick:  true,
	model.EventHover:  true,
	model.EventLoad:   true,
	model.EventScroll: true,
	model.EventCustom: true,
}

// parseAction reads <type> <event> [key=value]... where keys are url, target, script,
// method, event and newtab.
func parseAction(args []string) (model.Action, error) {
	var a model.Action
	a.Type = model.ActionType(strings.ToLower(args[0]))
	if !actionTypes[a.Type] {
		return a, fmt.Errorf("unknown action type %q", args[0])
	}
	a.EventType = model.ActionEvent(strings.ToLower(args[1]))
	if !actionEvents[a.EventType] {
		return a, fmt.Errorf("unknown action event %q", args[1])
	}
	pairs, err := parsePairs(args[2:])
	if err != nil {
		return a, err
	}
	for key, value := range pairs {
		switch strings.ToLower(key) {
		case "url":
			a.URL = value
		case "target":
			a.Target = value
		case "script":
			a.Script = value
		case "method":
			a.Method = value
		case "event":
			a.CustomEvent = value
		case "newtab":
			if a.OpenInNewTab, err = parseSwitch(value); err != nil {
				return a, err
			}
		default:
			return a, fmt.Errorf("unknown action option %q", key)
		}
	}
	return a, nil
}

func handleActionAdd(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	action, err := parseAction(cmd.Args[1:])
	if err != nil {
		return nil, err
	}
	s.Store.AddAction(id, action)
	s.Store.CommitHistory()
	return nil, nil
}

func handleActionUpdate(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	index, err := parseInt("index", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	action, err := parseAction(cmd.Args[2:])
	if err != nil {
		return nil, err
	}
	if e, _ := s.Store.Element(id); index < 0 || index >= len(e.Actions) {
		return fmt.Sprintf("%s has no action %d", id, index), nil
	}
	s.Store.UpdateAction(id, index, action)
	s.Store.CommitHistory()
	return nil, nil
}

func handleActionRemove(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	index, err := parseInt("index", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if e, _ := s.Store.Element(id); index < 0 || index >= len(e.Actions) {
		return fmt.Sprintf("%s has no action %d", id, index), nil
	}
	s.Store.RemoveAction(id, index)
	s.Store.CommitHistory()
	return nil, nil
}

func handleActionList(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	e, _ := s.Store.Element(id)
	if len(e.Actions) == 0 {
		return "No actions", nil
	}
	lines := make([]string, len(e.Actions))
	for i, a := range e.Actions {
		detail := a.URL
		if detail == "" {
			detail = a.Target
		}
		if detail == "" {
			detail = a.Script
		}
		lines[i] = fmt.Sprintf("%d: %s on %s %s", i, a.Type, a.EventType, detail)
	}
	return strings.Join(lines, "\n"), nil
}
