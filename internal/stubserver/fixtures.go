package stubserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Fixture catalog: a handful of well-known targets and canned query results
// so clients can exercise every read endpoint offline.

var knownSources = map[string]map[string]any{
	"crab": {
		"name":     "Crab",
		"ra":       83.63308,
		"dec":      22.01450,
		"resolver": "Simbad",
	},
	"sgr a*": {
		"name":     "Sgr A*",
		"ra":       266.41683,
		"dec":      -29.00781,
		"resolver": "Simbad",
	},
	"sn 2023ixf": {
		"name":     "SN 2023ixf",
		"ra":       210.91067,
		"dec":      54.31167,
		"resolver": "TNS",
	},
}

func (s *Server) resolve(c echo.Context) error {
	name := strings.ToLower(strings.TrimSpace(c.QueryParam("name")))
	source, ok := knownSources[name]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("could not resolve name"))
	}
	return c.JSON(http.StatusOK, source)
}

func (s *Server) visQuery(c echo.Context) error {
	if c.QueryParam("ra") == "" || c.QueryParam("begin") == "" {
		return c.JSON(http.StatusBadRequest, detail("missing coordinates or date range"))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{"begin": "2026-03-01 00:10:00", "end": "2026-03-01 14:40:00"},
			{"begin": "2026-03-02 01:05:00", "end": "2026-03-02 16:20:00"},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) observations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{
				"begin": "2026-02-10 01:00:00", "end": "2026-02-10 01:20:00",
				"targname": "Crab", "targetid": 30501, "seg": 1,
				"ra": 83.63308, "dec": 22.0145,
				"xrt": 7, "uvot": "0x30ed",
				"exposure": 1100.0, "slewtime": 110.0,
			},
			{
				"begin": "2026-02-10 02:35:00", "end": "2026-02-10 02:52:00",
				"targname": "Crab", "targetid": 30501, "seg": 1,
				"ra": 83.63308, "dec": 22.0145,
				"xrt": 7, "uvot": "0x30ed",
				"exposure": 900.0, "slewtime": 95.0,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) plan(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{
				"begin": "2026-03-05 10:00:00", "end": "2026-03-05 10:25:00",
				"targname": "Crab", "targetid": 30501, "seg": 2,
				"ra": 83.63308, "dec": 22.0145, "roll": 245.2,
				"xrt": 6, "uvot": "0x9999", "exposure": 1500.0,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) saa(c echo.Context) error {
	if c.QueryParam("begin") == "" {
		return c.JSON(http.StatusBadRequest, detail("missing date range"))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{"begin": "2026-03-01 04:12:00", "end": "2026-03-01 04:33:00"},
			{"begin": "2026-03-01 05:50:00", "end": "2026-03-01 06:12:00"},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) guano(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{
				"triggertype": "GRB", "triggertime": "2026-02-14 12:00:00",
				"offset": -50.0, "duration": 200.0,
				"obsnum": "00012345001", "quadsaway": 4,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) uvotMode(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"uvotmode": c.QueryParam("uvotmode"),
		"entries": []map[string]any{
			{
				"uvotmode": c.QueryParam("uvotmode"), "filter_name": "u",
				"eventfov": 0.0, "imagefov": 17.0, "binsize": 2,
				"max_exposure": 3000.0, "weight": 1.0, "comment": "blocked",
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) clock(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"utctime": "2026-03-01 00:00:00",
		"met":     793929627.0,
		"utcf":    -29.0,
	})
}

func (s *Server) tooRequests(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"entries": []map[string]any{
			{
				"too_id": 19001, "source_name": "SN 2023ixf", "source_type": "Supernova",
				"ra": 210.91067, "dec": 54.31167,
				"instrument": "XRT", "urgency": 3, "obs_type": "Light Curve",
				"timestamp": "2026-02-20 09:15:00",
				"xrt_mode":  7, "uvot_mode": "0x9999", "exposure": 5000.0,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) data(c echo.Context) error {
	obsNum := strings.TrimSpace(c.QueryParam("obsnum"))
	if obsNum == "" {
		return c.JSON(http.StatusBadRequest, detail("missing obsnum"))
	}
	prefix := "https://heasarc.gsfc.nasa.gov/FTP/swift/data/obs/2026_02/" + obsNum
	return c.JSON(http.StatusOK, map[string]any{
		"obsnum": obsNum,
		"entries": []map[string]any{
			{
				"path": "xrt/event/sw" + obsNum + "xpcw3po_cl.evt.gz",
				"url":  prefix + "/xrt/event/sw" + obsNum + "xpcw3po_cl.evt.gz",
				"type": "event", "size": 482113, "quicklook": false,
			},
			{
				"path": "auxil/sw" + obsNum + "sat.fits.gz",
				"url":  prefix + "/auxil/sw" + obsNum + "sat.fits.gz",
				"type": "auxil", "size": 120040, "quicklook": false,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) calendar(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	return c.JSON(http.StatusOK, map[string]any{
		"too_id": id,
		"entries": []map[string]any{
			{
				"start": "2026-03-01 00:00:00", "stop": "2026-03-02 00:00:00",
				"xrt_mode": 7, "uvot_mode": "0x9999",
				"exposure": 2500.0, "afst": 2311.0,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}

func (s *Server) commands(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	return c.JSON(http.StatusOK, map[string]any{
		"too_id": id,
		"entries": []map[string]any{
			{
				"queued": "2026-02-20 10:00:00", "uplinked": "2026-02-20 11:42:00",
				"status": "Uplinked",
				"ra":     210.91067, "dec": 54.31167, "exposure": 2500.0,
			},
		},
		"status": acceptedStatus(0, 0),
	})
}
