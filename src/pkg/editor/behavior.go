package editor

import "sitecraft/local-app/src/pkg/model"

// AddAnimation appends an animation to the element.
func (s *ElementStore) AddAnimation(id string, anim model.Animation) {
	s.apply("animation-add", func() change {
		e := s.find(id)
		if e == nil {
			return 0
		}
		e.Animations = append(e.Animations, anim)
		s.touch(e)
		return changeElements
	})
}

// UpdateAnimation replaces the animation at index. Out of range indices are ignored.
func (s *ElementStore) UpdateAnimation(id string, index int, anim model.Animation) {
	s.apply("animation-update", func() change {
		e := s.find(id)
		if e == nil || index < 0 || index >= len(e.Animations) {
			return 0
		}
		e.Animations[index] = anim
		s.touch(e)
		return changeElements
	})
}

// RemoveAnimation deletes the animation at index. Out of range indices are ignored.
func (s *ElementStore) RemoveAnimation(id string, index int) {
	s.apply("animation-remove", func() change {
		e := s.find(id)
		if e == nil || index < 0 || index >= len(e.Animations) {
			return 0
		}
		e.Animations = append(e.Animations[:index], e.Animations[index+1:]...)
		s.touch(e)
		return changeElements
	})
}

// AddAction appends an interaction to the element.
func (s *ElementStore) AddAction(id string, action model.Action) {
	s.apply("action-add", func() change {
		e := s.find(id)
		if e == nil {
			return 0
		}
		e.Actions = append(e.Actions, action)
		s.touch(e)
		return changeElements
	})
}

// UpdateAction replaces the action at index. Out of range indices are ignored.
func (s *ElementStore) UpdateAction(id string, index int, action model.Action) {
	s.apply("action-update", func() change {
		e := s.find(id)
		if e == nil || index < 0 || index >= len(e.Actions) {
			return 0
		}
		e.Actions[index] = action
		s.touch(e)
		return changeElements
	})
}

// RemoveAction deletes the action at index. Out of range indices are ignored.
func (s *ElementStore) RemoveAction(id string, index int) {
	s.apply("action-remove", func() change {
		e := s.find(id)
		if e == nil || index < 0 || index >= len(e.Actions) {
			return 0
		}
		e.Actions = append(e.Actions[:index], e.Actions[index+1:]...)
		s.touch(e)
		return changeElements
	})
}

// UpdateResponsiveStyles merges styles into the override for device.
func (s *ElementStore) UpdateResponsiveStyles(id string, device model.DeviceType, styles map[string]string) {
	s.apply("responsive", func() change {
		e := s.find(id)
		if e == nil || len(styles) == 0 {
			return 0
		}
		if e.Responsive == nil {
			e.Responsive = map[model.DeviceType]model.ResponsiveOverride{}
		}
		override := e.Responsive[device]
		if override.Styles == nil {
			override.Styles = map[string]string{}
		}
		for k, v := range styles {
			override.Styles[k] = v
		}
		e.Responsive[device] = override
		s.touch(e)
		return changeElements
	})
}
