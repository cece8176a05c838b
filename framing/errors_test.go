package framing

import "testing"

func TestValidateErrorFrameScope(t *testing.T) {
	cases := []struct {
		typ     ErrorFrameType
		sid     StreamID
		wantErr bool
	}{
		{ErrorInvalidSetup, 0, false},
		{ErrorInvalidSetup, 1, true},
		{ErrorConnectionError, 0, false},
		{ErrorConnectionError, 3, true},
		{ErrorApplicationError, 0, true},
		{ErrorApplicationError, 4, false},
		{ErrorCanceled, 0, true},
		{ErrorCanceled, 2, false},
	}
	for _, tc := range cases {
		err := ValidateErrorFrameScope(tc.typ, tc.sid)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateErrorFrameScope(%s, %d) error = %v, wantErr %v", tc.typ, tc.sid, err, tc.wantErr)
		}
	}
}
