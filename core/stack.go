package core

// StackCapacity is the number of slots of the operand stack.
const StackCapacity = 1024

// Stack is the fixed-capacity operand stack. It never grows; pushing onto a
// full stack or popping an empty one is a fault.
type Stack struct {
	slots [StackCapacity]int32
	sp    int
}

// Len returns the stack pointer, the index of the next free slot.
func (s *Stack) Len() int {
	return s.sp
}

// Push places v on top of the stack.
func (s *Stack) Push(v int32) error {
	if s.sp >= StackCapacity {
		return fault(StackOverflow, "capacity %d", StackCapacity)
	}
	s.slots[s.sp] = v
	s.sp++
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (int32, error) {
	if s.sp <= 0 {
		return 0, fault(StackUnderflow, "stack is empty")
	}
	s.sp--
	return s.slots[s.sp], nil
}

// At returns the value of the slot at an absolute index.
func (s *Stack) At(index int) (int32, error) {
	if err := s.checkIndex(index); err != nil {
		return 0, err
	}
	return s.slots[index], nil
}

// SwapTop exchanges the slot at an absolute index with the top slot.
func (s *Stack) SwapTop(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	top := s.sp - 1
	s.slots[index], s.slots[top] = s.slots[top], s.slots[index]
	return nil
}

// Values returns a copy of the occupied slots, bottom first.
func (s *Stack) Values() []int32 {
	out := make([]int32, s.sp)
	copy(out, s.slots[:s.sp])
	return out
}

func (s *Stack) checkIndex(index int) error {
	if index < 0 || index >= s.sp {
		return fault(IndexOutOfRange, "index %d, stack pointer %d", index, s.sp)
	}
	return nil
}
