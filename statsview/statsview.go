// This file is part of IECserial.
//
// IECserial is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// IECserial is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with IECserial.  If not, see <https://www.gnu.org/licenses/>.

package statsview

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/iecserial/logger"
)

// Address of the stats server.
const Address = "localhost:12640"

const url = "/debug/statsview"

// sampling interval of the charts in milliseconds. a transfer to a printer
// lasts seconds rather than minutes so the default interval is too coarse.
const interval = 500

// Server is a running stats server.
type Server struct {
	mgr *statsview.ViewManager
}

// Launch a new goroutine running the statsview. The address of the server is
// written to output.
func Launch(output io.Writer) *Server {
	viewer.SetConfiguration(viewer.WithAddr(Address), viewer.WithInterval(interval))
	srv := &Server{mgr: statsview.New()}

	go func() {
		err := srv.mgr.Start()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(logger.Allow, "statsview", err)
		}
	}()

	logger.Logf(logger.Allow, "statsview", "launched on %s", Address)
	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)

	return srv
}

// Stop the server.
func (srv *Server) Stop() {
	srv.mgr.Stop()
	logger.Log(logger.Allow, "statsview", "stopped")
}
