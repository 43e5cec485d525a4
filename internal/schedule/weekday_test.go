package schedule

import "testing"

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "monday", want: 1},
		{in: "Tuesday", want: 2},
		{in: " wednesday ", want: 3},
		{in: "thu", want: 4},
		{in: "fri", want: 5},
		{in: "sat", want: 6},
		{in: "sun", want: 7},
		{in: "2", want: 2},
		{in: "7", want: 7},
		{in: "0", wantErr: true},
		{in: "8", wantErr: true},
		{in: "tu", wantErr: true},
		{in: "blursday", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWeekday(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekday(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(2); got != "Tuesday" {
		t.Errorf("WeekdayName(2) = %q", got)
	}
	if got := WeekdayName(7); got != "Sunday" {
		t.Errorf("WeekdayName(7) = %q", got)
	}
}
