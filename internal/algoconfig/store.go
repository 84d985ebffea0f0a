package algoconfig

import "sync"

// Store is the process-wide configuration. The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	denoiser         DenoiserAlgorithm
	denoiserShader   ShaderType
	classifier       ClassifierAlgorithm
	classifierShader ShaderType
	detection        DetectionAlgorithm
	detectionShader  ShaderType
	style            StyleTransfer
	precision        Precision
	classifierIndex  int

	change   ChangeState
	revision uint64
}

// New returns a store with every category set to none, fragment shaders and FP32.
func New() *Store {
	return &Store{
		denoiser:         DenoiserNone,
		denoiserShader:   ShaderFragment,
		classifier:       ClassifierNone,
		classifierShader: ShaderFragment,
		detection:        DetectionNone,
		detectionShader:  ShaderFragment,
		style:            StyleNone,
		precision:        FP32,
		change:           Unchanged,
	}
}

// markLocked flags a pending change when a setter replaced a value.
func (s *Store) markLocked(changed bool) {
	if !changed {
		return
	}
	s.change = PendingApply
	s.revision++
}

func (s *Store) SetDenoiserAlgorithm(a DenoiserAlgorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(s.denoiser != a)
	s.denoiser = a
}

// SetClassifierAlgorithm also resets the classifier index, even when the
// algorithm is unchanged.
func (s *Store) SetClassifierAlgorithm(a ClassifierAlgorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(s.classifier != a)
	s.classifier = a
	s.classifierIndex = 0
}

func (s *Store) SetDetectionAlgorithm(a DetectionAlgorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(s.detection != a)
	s.detection = a
}

func (s *Store) SetStyleTransfer(a StyleTransfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(s.style != a)
	s.style = a
}

// SetShaderType sets the shader backend of a category. Style transfer has no
// shader choice and yields ErrNoShaderChoice.
func (s *Store) SetShaderType(c Category, t ShaderType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var field *ShaderType
	switch c {
	case CategoryDenoiser:
		field = &s.denoiserShader
	case CategoryClassifier:
		field = &s.classifierShader
	case CategoryDetector:
		field = &s.detectionShader
	default:
		return ErrNoShaderChoice
	}
	s.markLocked(*field != t)
	*field = t
	return nil
}

func (s *Store) SetPrecision(p Precision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(s.precision != p)
	s.precision = p
}

// SetClassifierIndex records the latest classifier output. It does not touch the change flag.
func (s *Store) SetClassifierIndex(i int) {
	s.mu.Lock()
	s.classifierIndex = i
	s.mu.Unlock()
}

func (s *Store) ClassifierIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifierIndex
}

func (s *Store) ChangeState() ChangeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.change
}

func (s *Store) IsPendingApply() bool { return s.ChangeState() == PendingApply }

func (s *Store) IsApplied() bool { return s.ChangeState() == Applied }

// MarkApplied moves pending_apply to applied; any other state is left alone.
func (s *Store) MarkApplied() {
	s.mu.Lock()
	if s.change == PendingApply {
		s.change = Applied
	}
	s.mu.Unlock()
}

// MarkAppliedRevision is MarkApplied guarded by the revision the backend
// applied. An acknowledgment for an older revision is dropped so a late
// completion cannot hide a newer pending change. It reports whether the
// flag moved to applied.
func (s *Store) MarkAppliedRevision(rev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.change != PendingApply || s.revision != rev {
		return false
	}
	s.change = Applied
	return true
}

// ClearChangeFlag forces the flag back to unchanged.
func (s *Store) ClearChangeFlag() {
	s.mu.Lock()
	s.change = Unchanged
	s.mu.Unlock()
}

// DismissApplied clears the flag only if it is applied, reporting whether it did.
// It is the check-and-clear used by the loading indicator.
func (s *Store) DismissApplied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.change != Applied {
		return false
	}
	s.change = Unchanged
	return true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Denoiser:         s.denoiser,
		DenoiserShader:   s.denoiserShader,
		Classifier:       s.classifier,
		ClassifierShader: s.classifierShader,
		Detection:        s.detection,
		DetectionShader:  s.detectionShader,
		StyleTransfer:    s.style,
		Precision:        s.precision,
		ClassifierIndex:  s.classifierIndex,
		Change:           s.change,
		Revision:         s.revision,
	}
}

// ClassifierLabel renders the current classifier output. It returns "N/A"
// without an active classifier and "None" when the index falls outside the
// table of the active variant.
func (s *Store) ClassifierLabel(tables LabelTables) string {
	s.mu.Lock()
	algo, idx := s.classifier, s.classifierIndex
	s.mu.Unlock()
	switch algo {
	case ClassifierResNet18:
		return lookupLabel(tables.ResNet18, idx)
	case ClassifierMobileNetV2:
		return lookupLabel(tables.MobileNetV2, idx)
	default:
		return labelNotApplicable
	}
}
